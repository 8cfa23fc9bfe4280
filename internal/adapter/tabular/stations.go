package tabular

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/air-quality-maps/internal/domain"
)

// StationLoader reads the station metadata CSV.
type StationLoader struct {
	path    string
	country string
	logger  *slog.Logger
}

// NewStationLoader creates a loader for path. A non-empty country keeps only
// stations of that country.
func NewStationLoader(path, country string, logger *slog.Logger) *StationLoader {
	return &StationLoader{path: path, country: country, logger: logger}
}

// LoadStations returns one Station per distinct name, in file order. The first
// row of a name wins; rows with unusable coordinates are skipped with a warning.
func (l *StationLoader) LoadStations(_ context.Context) ([]domain.Station, error) {
	df, err := readFrameFile(l.path)
	if err != nil {
		return nil, err
	}

	required := []string{ColStationName, ColLongitude, ColLatitude}
	if l.country != "" {
		required = append(required, ColCountry)
	}
	if err := requireColumns(df, l.path, required...); err != nil {
		return nil, err
	}

	if l.country != "" {
		df = df.Filter(dataframe.F{Colname: ColCountry, Comparator: series.Eq, Comparando: l.country})
		if df.Err != nil {
			return nil, df.Err
		}
	}

	names := df.Col(ColStationName).Records()
	lons := df.Col(ColLongitude).Records()
	lats := df.Col(ColLatitude).Records()

	seen := make(map[string]bool, len(names))
	stations := make([]domain.Station, 0, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if seen[name] {
			continue
		}
		seen[name] = true

		st, err := parseStation(name, lons[i], lats[i])
		if err != nil {
			l.logger.Warn("skipping station with invalid metadata",
				"station", name,
				"row", i+1,
				"error", err,
			)
			continue
		}
		stations = append(stations, st)
	}

	l.logger.Info("stations loaded",
		"path", l.path,
		"country", l.country,
		"rows", len(names),
		"stations", len(stations),
	)
	return stations, nil
}

func parseStation(name, lon, lat string) (domain.Station, error) {
	lonV, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return domain.Station{}, err
	}
	latV, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return domain.Station{}, err
	}
	st := domain.Station{Name: name, Longitude: lonV, Latitude: latV}
	if err := st.Validate(); err != nil {
		return domain.Station{}, err
	}
	return st, nil
}
