package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/air-quality-maps/internal/domain"
	"github.com/couchcryptid/air-quality-maps/internal/observability"
)

// StationSource reads the station metadata.
type StationSource interface {
	LoadStations(ctx context.Context) ([]domain.Station, error)
}

// PredictionSource reads and merges the prediction files.
type PredictionSource interface {
	LoadPredictions(ctx context.Context) (*domain.PredictionSet, error)
}

// BorderSource reads the boundary overlay.
type BorderSource interface {
	LoadBorders(ctx context.Context) (*geojson.FeatureCollection, error)
}

// MapWriter renders one map document and returns the path written.
type MapWriter interface {
	WriteMap(ctx context.Context, doc domain.MapDocument) (string, error)
}

// TableWriter renders the health-index prediction table and returns the path written.
type TableWriter interface {
	WriteTable(ctx context.Context, table domain.HealthTable) (string, error)
}

// Stages wires the pipeline inputs and outputs. Borders and Table are optional.
type Stages struct {
	Stations    StationSource
	Predictions PredictionSource
	Borders     BorderSource
	Maps        MapWriter
	Table       TableWriter
}

// Pipeline runs the load-compose-write batch once.
type Pipeline struct {
	stages   Stages
	composer *Composer
	scale    *domain.HealthScale
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(stages Stages, composer *Composer, scale *domain.HealthScale, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		stages:   stages,
		composer: composer,
		scale:    scale,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run loads every input, writes one map per pollutant and then the prediction
// table. Any load or write error aborts the run. Cancellation is checked between
// artifacts.
func (p *Pipeline) Run(ctx context.Context) error {
	start := domain.Now()
	p.logger.Info("run started")

	stations, err := p.stages.Stations.LoadStations(ctx)
	if err != nil {
		return fmt.Errorf("load stations: %w", err)
	}
	p.metrics.StationsLoaded.Set(float64(len(stations)))

	set, err := p.stages.Predictions.LoadPredictions(ctx)
	if err != nil {
		return fmt.Errorf("load predictions: %w", err)
	}
	p.metrics.PredictionRows.Set(float64(set.Len()))
	p.metrics.PredictionStations.Set(float64(len(set.Stations())))

	var borders *geojson.FeatureCollection
	if p.stages.Borders != nil {
		borders, err = p.stages.Borders.LoadBorders(ctx)
		if err != nil {
			return fmt.Errorf("load borders: %w", err)
		}
	}

	matched := p.composer.MatchStations(stations, set)

	pollutants := set.Pollutants()
	if len(pollutants) == 0 {
		p.logger.Warn("prediction files carry no Predicted_ columns, no maps to write")
	}

	for _, pol := range pollutants {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc := p.composer.Compose(pol, stations, matched, set, borders)
		path, err := p.stages.Maps.WriteMap(ctx, doc)
		if err != nil {
			return fmt.Errorf("write %s map: %w", pol, err)
		}
		p.metrics.ArtifactsWritten.WithLabelValues("map").Inc()
		p.logger.Info("map written",
			"pollutant", pol.String(),
			"path", path,
			"points", len(doc.Animation.Features),
		)
	}

	if p.stages.Table != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.writeTable(ctx, set); err != nil {
			return err
		}
	}

	elapsed := domain.Now().Sub(start)
	p.metrics.RunDuration.Set(elapsed.Seconds())
	p.metrics.LastSuccess.Set(float64(domain.Now().Unix()))
	p.logger.Info("run finished",
		"maps", len(pollutants),
		"stations", len(matched),
		"duration", elapsed,
	)
	return nil
}

func (p *Pipeline) writeTable(ctx context.Context, set *domain.PredictionSet) error {
	table, err := domain.BuildHealthTable(set, p.scale)
	if err != nil {
		return fmt.Errorf("classify predictions: %w", err)
	}
	path, err := p.stages.Table.WriteTable(ctx, table)
	if err != nil {
		return fmt.Errorf("write prediction table: %w", err)
	}
	p.metrics.ArtifactsWritten.WithLabelValues("table").Inc()
	p.logger.Info("prediction table written", "path", path, "rows", len(table.Rows))
	return nil
}
