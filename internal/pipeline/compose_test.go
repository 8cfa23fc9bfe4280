package pipeline_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/air-quality-maps/internal/domain"
	"github.com/couchcryptid/air-quality-maps/internal/observability"
	"github.com/couchcryptid/air-quality-maps/internal/pipeline"
)

func TestComposer_Compose(t *testing.T) {
	freezeClock(t)
	set := domain.NewPredictionSet([]domain.PredictionRow{
		row("Kaleva", 0, map[domain.Pollutant]float64{domain.PM25: 10}),
		row("Kaleva", 1, map[domain.Pollutant]float64{domain.PM25: 30}),
		row("Kallio 2", 0, map[domain.Pollutant]float64{domain.PM25: 50}),
	}, []domain.Pollutant{domain.PM25})
	stations := []domain.Station{kaleva, kallio}

	c := pipeline.NewComposer(helsinki, 5, slog.Default(), observability.NewMetrics())
	matched := c.MatchStations(stations, set)
	doc := c.Compose(domain.PM25, stations, matched, set, nil)

	wantMarkers := []domain.Marker{
		{Name: "Kaleva", Geo: domain.Geo{Lat: 61.5025, Lon: 23.7716}, Popup: "Kaleva: lon:23.7716, lat:61.5025"},
		{Name: "Kallio 2", Geo: domain.Geo{Lat: 60.1873, Lon: 24.9508}, Popup: "Kallio 2: lon:24.9508, lat:60.1873"},
	}
	if diff := cmp.Diff(wantMarkers, doc.Markers); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, helsinki, doc.Center)
	assert.Equal(t, 5, doc.Zoom)
	assert.Nil(t, doc.Borders)
	assert.Empty(t, doc.BorderName)
	assert.Equal(t, domain.DefaultAnimationOptions(), doc.Options)
	assert.Equal(t, time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC), doc.GeneratedAt)
	assert.Equal(t, "Predicted PM2.5 (ug.m-3)", doc.Title())

	require.Len(t, doc.Animation.Features, 3)
	first := doc.Animation.Features[0]
	assert.Equal(t, "2024-01-01T00:00:00Z", first.Properties["time"])
	assert.Equal(t, "Kaleva: 10", first.Properties["tooltip"])
	assert.Equal(t, "circle", first.Properties["icon"])

	wantStyle := map[string]any{
		"fillColor":   domain.GradientColor(0),
		"fillOpacity": 0.6,
		"stroke":      false,
		"radius":      40,
	}
	if diff := cmp.Diff(wantStyle, first.Properties["iconstyle"]); diff != "" {
		t.Errorf("iconstyle mismatch (-want +got):\n%s", diff)
	}

	last := doc.Animation.Features[2]
	assert.Equal(t, "Kallio 2: 50", last.Properties["tooltip"])
	assert.Equal(t, domain.GradientColor(1), iconFill(t, last))

	mid := doc.Animation.Features[1]
	assert.Equal(t, domain.ContinuousColor(30, 10, 50), iconFill(t, mid))
}

func TestComposer_ConstantSeriesUsesMidpoint(t *testing.T) {
	set := domain.NewPredictionSet([]domain.PredictionRow{
		row("Kaleva", 0, map[domain.Pollutant]float64{domain.CO: 4}),
		row("Kaleva", 1, map[domain.Pollutant]float64{domain.CO: 4}),
	}, []domain.Pollutant{domain.CO})

	c := pipeline.NewComposer(helsinki, 5, slog.Default(), observability.NewMetrics())
	stations := []domain.Station{kaleva}
	doc := c.Compose(domain.CO, stations, c.MatchStations(stations, set), set, nil)

	require.Len(t, doc.Animation.Features, 2)
	for _, f := range doc.Animation.Features {
		assert.Equal(t, domain.GradientColor(0.5), iconFill(t, f))
	}
}

func TestComposer_MissingValuesProduceNoPoints(t *testing.T) {
	set := domain.NewPredictionSet([]domain.PredictionRow{
		row("Kaleva", 0, map[domain.Pollutant]float64{domain.O3: 40}),
		row("Kaleva", 1, map[domain.Pollutant]float64{domain.PM10: 12}),
	}, []domain.Pollutant{domain.O3, domain.PM10})

	c := pipeline.NewComposer(helsinki, 5, slog.Default(), observability.NewMetrics())
	stations := []domain.Station{kaleva}
	doc := c.Compose(domain.O3, stations, c.MatchStations(stations, set), set, geojson.NewFeatureCollection())

	assert.Len(t, doc.Animation.Features, 1)
	assert.Equal(t, pipeline.BorderLayerName, doc.BorderName)
}

func iconFill(t *testing.T, f *geojson.Feature) string {
	t.Helper()
	style, ok := f.Properties["iconstyle"].(map[string]any)
	require.True(t, ok)
	fill, ok := style["fillColor"].(string)
	require.True(t, ok)
	return fill
}
