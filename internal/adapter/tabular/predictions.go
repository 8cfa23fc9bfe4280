package tabular

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/couchcryptid/air-quality-maps/internal/domain"
)

// PredictionLoader discovers and merges per-station prediction files.
type PredictionLoader struct {
	dir     string
	pattern string
	logger  *slog.Logger
}

// NewPredictionLoader creates a loader for files in dir matching pattern, e.g.
// "predictions_station_*.csv". The text matched by '*' is the station name.
func NewPredictionLoader(dir, pattern string, logger *slog.Logger) *PredictionLoader {
	return &PredictionLoader{dir: dir, pattern: pattern, logger: logger}
}

// LoadPredictions merges every matching file into one PredictionSet. Files are
// read in lexical order and rows keep their in-file order. Any malformed date or
// value aborts the whole load.
func (l *PredictionLoader) LoadPredictions(ctx context.Context) (*domain.PredictionSet, error) {
	files, err := filepath.Glob(filepath.Join(l.dir, l.pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", l.pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: nothing matches %q in %s", domain.ErrNoPredictionFiles, l.pattern, l.dir)
	}

	var rows []domain.PredictionRow
	var pollutants []domain.Pollutant
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		station := stationNameFromFile(l.pattern, file)
		fileRows, filePollutants, err := l.loadFile(file, station)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("prediction file loaded", "file", file, "station", station, "rows", len(fileRows))

		rows = append(rows, fileRows...)
		pollutants = append(pollutants, filePollutants...)
	}

	set := domain.NewPredictionSet(rows, pollutants)
	l.logger.Info("predictions merged",
		"dir", l.dir,
		"files", len(files),
		"rows", set.Len(),
		"stations", len(set.Stations()),
	)
	return set, nil
}

type valueColumn struct {
	header    string
	pollutant domain.Pollutant
	cells     []string
}

func (l *PredictionLoader) loadFile(path, station string) ([]domain.PredictionRow, []domain.Pollutant, error) {
	df, err := readFrameFile(path)
	if err != nil {
		return nil, nil, err
	}
	if err := requireColumns(df, path, ColDate); err != nil {
		return nil, nil, err
	}

	var columns []valueColumn
	var pollutants []domain.Pollutant
	for _, name := range df.Names() {
		p, isPrediction, err := domain.PollutantForColumn(name)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		if !isPrediction {
			continue
		}
		columns = append(columns, valueColumn{header: name, pollutant: p, cells: df.Col(name).Records()})
		pollutants = append(pollutants, p)
	}

	dates := df.Col(ColDate).Records()
	rows := make([]domain.PredictionRow, 0, len(dates))
	for i, raw := range dates {
		ts, err := parseDate(raw)
		if err != nil {
			return nil, nil, &domain.DateParseError{File: path, Row: i + 1, Value: raw, Err: err}
		}

		row := domain.PredictionRow{
			StationName: station,
			Timestamp:   ts,
			Values:      make(map[domain.Pollutant]float64, len(columns)),
		}
		for _, col := range columns {
			v, ok, err := parseValue(col.cells[i])
			if err != nil {
				return nil, nil, fmt.Errorf("%s row %d column %q: %w", path, i+1, col.header, err)
			}
			if ok {
				row.Values[col.pollutant] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, pollutants, nil
}

// parseDate accepts the layouts pandas writes for datetime columns. Naive
// timestamps are taken as UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	return dateparse.ParseIn(s, time.UTC)
}

// parseValue returns ok=false for missing cells, including any spelling of NaN.
// Infinite values are rejected.
func parseValue(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "NA" || strings.EqualFold(strings.TrimLeft(s, "+-"), "nan") {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid value %q", s)
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	if math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("non-finite value %q", s)
	}
	return v, true, nil
}

// stationNameFromFile strips the literal parts of pattern around '*' from the
// file's base name: "predictions_station_Kaleva.csv" -> "Kaleva".
func stationNameFromFile(pattern, path string) string {
	base := filepath.Base(path)
	prefix, suffix := pattern, ""
	if i := strings.Index(pattern, "*"); i >= 0 {
		prefix, suffix = pattern[:i], pattern[i+1:]
	}
	name := strings.TrimPrefix(base, prefix)
	if suffix != "" && !strings.ContainsAny(suffix, "*?[") {
		return strings.TrimSuffix(name, suffix)
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
