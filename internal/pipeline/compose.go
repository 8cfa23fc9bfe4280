package pipeline

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/air-quality-maps/internal/domain"
	"github.com/couchcryptid/air-quality-maps/internal/observability"
)

// BorderLayerName is the layer-control label of the boundary overlay.
const BorderLayerName = "country border"

// Animation point styling.
const (
	pointRadius      = 40
	pointFillOpacity = 0.6
)

// Composer builds one MapDocument per pollutant from the loaded inputs.
type Composer struct {
	center  domain.Geo
	zoom    int
	options domain.AnimationOptions
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewComposer creates a Composer for maps centred on center at the given zoom.
func NewComposer(center domain.Geo, zoom int, logger *slog.Logger, metrics *observability.Metrics) *Composer {
	return &Composer{
		center:  center,
		zoom:    zoom,
		options: domain.DefaultAnimationOptions(),
		logger:  logger,
		metrics: metrics,
	}
}

// MatchStations pairs the stations found in the prediction set with their
// metadata, in prediction discovery order. Prediction stations without metadata
// and metadata stations without predictions are logged and counted, never fatal.
func (c *Composer) MatchStations(stations []domain.Station, set *domain.PredictionSet) []domain.Station {
	idx := domain.IndexStations(stations)
	predicted := make(map[string]bool)

	var matched []domain.Station
	for _, name := range set.Stations() {
		predicted[name] = true
		st, err := idx.Lookup(name)
		if err != nil {
			c.logger.Warn("prediction station has no metadata, skipping", "station", name, "error", err)
			c.metrics.StationsSkipped.WithLabelValues("not_found").Inc()
			continue
		}
		matched = append(matched, st)
	}

	for _, st := range stations {
		if !predicted[st.Name] {
			c.logger.Warn("station has no predictions, marker only", "station", st.Name)
			c.metrics.StationsSkipped.WithLabelValues("no_predictions").Inc()
		}
	}
	return matched
}

// Compose assembles the map of pollutant p. Every station gets a marker; only
// matched stations contribute animation points. Colours are normalised on the
// global range of p over the whole set.
func (c *Composer) Compose(p domain.Pollutant, stations, matched []domain.Station, set *domain.PredictionSet, borders *geojson.FeatureCollection) domain.MapDocument {
	rng, _ := set.Range(p)

	doc := domain.MapDocument{
		Pollutant:   p,
		Center:      c.center,
		Zoom:        c.zoom,
		Borders:     borders,
		Markers:     make([]domain.Marker, 0, len(stations)),
		Animation:   geojson.NewFeatureCollection(),
		Options:     c.options,
		Range:       rng,
		GeneratedAt: domain.Now(),
	}
	if borders != nil {
		doc.BorderName = BorderLayerName
	}

	for _, st := range stations {
		doc.Markers = append(doc.Markers, domain.Marker{
			Name:  st.Name,
			Geo:   st.Geo(),
			Popup: markerPopup(st),
		})
	}

	for _, st := range matched {
		for _, r := range set.StationReadings(st.Name, p) {
			doc.Animation.Append(animationFeature(st, r, rng))
		}
	}

	c.logger.Debug("map composed",
		"pollutant", p.String(),
		"markers", len(doc.Markers),
		"points", len(doc.Animation.Features),
		"min", rng.Min,
		"max", rng.Max,
	)
	return doc
}

func markerPopup(st domain.Station) string {
	return fmt.Sprintf("%s: lon:%g, lat:%g", st.Name, st.Longitude, st.Latitude)
}

func animationFeature(st domain.Station, r domain.Reading, rng domain.ValueRange) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{st.Longitude, st.Latitude})
	f.Properties["time"] = r.Timestamp.UTC().Format(time.RFC3339)
	f.Properties["tooltip"] = st.Name + ": " + strconv.FormatFloat(r.Value, 'f', -1, 64)
	f.Properties["icon"] = "circle"
	f.Properties["iconstyle"] = map[string]any{
		"fillColor":   domain.ContinuousColor(r.Value, rng.Min, rng.Max),
		"fillOpacity": pointFillOpacity,
		"stroke":      false,
		"radius":      pointRadius,
	}
	return f
}
