package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds the paths and rendering settings of one batch run, populated from
// environment variables with hard-coded defaults.
type Config struct {
	StationFile        string
	StationCountry     string // empty keeps every country
	PredictionsDir     string
	PredictionsPattern string
	BorderShapefile    string // empty disables the border layer
	OutputDir          string

	MapCenterLat float64
	MapCenterLon float64
	MapZoom      int

	TableEnabled    bool
	MetricsTextfile string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	lat, lon, err := parseCenter(sharedcfg.EnvOrDefault("MAP_CENTER", "60.1699,24.9384"))
	if err != nil {
		return nil, err
	}

	zoom, err := strconv.Atoi(sharedcfg.EnvOrDefault("MAP_ZOOM", "5"))
	if err != nil || zoom < 0 || zoom > 18 {
		return nil, errors.New("invalid MAP_ZOOM: must be an integer between 0 and 18")
	}

	tableEnabled, err := strconv.ParseBool(sharedcfg.EnvOrDefault("TABLE_ENABLED", "true"))
	if err != nil {
		return nil, errors.New("invalid TABLE_ENABLED: must be a boolean")
	}

	cfg := &Config{
		StationFile:        sharedcfg.EnvOrDefault("STATION_FILE", filepath.Join("data", "Air pollution data", "metadata", "AirQualityStation.csv")),
		StationCountry:     envOrDefaultAllowEmpty("STATION_COUNTRY", "Finland"),
		PredictionsDir:     sharedcfg.EnvOrDefault("PREDICTIONS_DIR", filepath.Join("data", "predictions")),
		PredictionsPattern: sharedcfg.EnvOrDefault("PREDICTIONS_PATTERN", "predictions_station_*.csv"),
		BorderShapefile:    envOrDefaultAllowEmpty("BORDER_SHAPEFILE", filepath.Join("data", "GIS data", "borders", "fi.shp")),
		OutputDir:          sharedcfg.EnvOrDefault("OUTPUT_DIR", "."),
		MapCenterLat:       lat,
		MapCenterLon:       lon,
		MapZoom:            zoom,
		TableEnabled:       tableEnabled,
		MetricsTextfile:    sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
	}

	if cfg.StationFile == "" {
		return nil, errors.New("STATION_FILE is required")
	}
	if cfg.PredictionsDir == "" {
		return nil, errors.New("PREDICTIONS_DIR is required")
	}
	if _, err := filepath.Match(cfg.PredictionsPattern, "predictions_station_x.csv"); err != nil || cfg.PredictionsPattern == "" {
		return nil, fmt.Errorf("invalid PREDICTIONS_PATTERN %q", cfg.PredictionsPattern)
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (allowed: json, text)", cfg.LogFormat)
	}

	return cfg, nil
}

// parseCenter parses "lat,lon".
func parseCenter(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid MAP_CENTER %q: want \"lat,lon\"", s)
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("invalid MAP_CENTER %q: coordinates out of range", s)
	}
	return lat, lon, nil
}

// envOrDefaultAllowEmpty is like EnvOrDefault but treats an explicitly empty
// variable as a value, so optional features can be switched off.
func envOrDefaultAllowEmpty(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}
