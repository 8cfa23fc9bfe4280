// Command aqmaps renders air-quality prediction maps. It loads the station
// metadata and every per-station prediction file, then writes one Leaflet page
// per pollutant and the health-index prediction table into OUTPUT_DIR.
//
// All settings come from environment variables; see internal/config.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/air-quality-maps/internal/adapter/leaflet"
	"github.com/couchcryptid/air-quality-maps/internal/adapter/report"
	"github.com/couchcryptid/air-quality-maps/internal/adapter/shapefile"
	"github.com/couchcryptid/air-quality-maps/internal/adapter/tabular"
	"github.com/couchcryptid/air-quality-maps/internal/config"
	"github.com/couchcryptid/air-quality-maps/internal/domain"
	"github.com/couchcryptid/air-quality-maps/internal/observability"
	"github.com/couchcryptid/air-quality-maps/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := run(ctx, cfg, logger, metrics)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	maps, err := leaflet.NewWriter(cfg.OutputDir, logger)
	if err != nil {
		return err
	}

	stages := pipeline.Stages{
		Stations:    tabular.NewStationLoader(cfg.StationFile, cfg.StationCountry, logger),
		Predictions: tabular.NewPredictionLoader(cfg.PredictionsDir, cfg.PredictionsPattern, logger),
		Maps:        maps,
	}

	if cfg.BorderShapefile != "" {
		stages.Borders = shapefile.NewBorderLoader(cfg.BorderShapefile, logger)
	} else {
		logger.Info("border layer disabled")
	}

	if cfg.TableEnabled {
		table, err := report.NewWriter(cfg.OutputDir, logger)
		if err != nil {
			return err
		}
		stages.Table = table
	} else {
		logger.Info("prediction table disabled")
	}

	center := domain.Geo{Lat: cfg.MapCenterLat, Lon: cfg.MapCenterLon}
	composer := pipeline.NewComposer(center, cfg.MapZoom, logger, metrics)

	p := pipeline.New(stages, composer, domain.DefaultHealthScale(), logger, metrics)
	return p.Run(ctx)
}
