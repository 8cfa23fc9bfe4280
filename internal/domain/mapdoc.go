package domain

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// Marker is a clustered station pin on the base map.
type Marker struct {
	Name  string `json:"name"`
	Geo   Geo    `json:"geo"`
	Popup string `json:"popup"`
}

// AnimationOptions configures playback of the timestamped layer. Period and
// Duration are ISO 8601 durations.
type AnimationOptions struct {
	Period               string `json:"period"`
	Duration             string `json:"duration"`
	AutoPlay             bool   `json:"autoPlay"`
	Loop                 bool   `json:"loop"`
	MaxSpeed             int    `json:"maxSpeed"`
	LoopButton           bool   `json:"loopButton"`
	DateOptions          string `json:"dateOptions"`
	TimeSliderDragUpdate bool   `json:"timeSliderDragUpdate"`
}

// DefaultAnimationOptions steps hourly and keeps each point visible for two months.
func DefaultAnimationOptions() AnimationOptions {
	return AnimationOptions{
		Period:               "PT1H",
		Duration:             "P2M",
		AutoPlay:             false,
		Loop:                 false,
		MaxSpeed:             100,
		LoopButton:           true,
		DateOptions:          "YYYY/MM/DD HH:mm:ss",
		TimeSliderDragUpdate: true,
	}
}

// MapDocument is everything needed to render one pollutant's map artifact.
type MapDocument struct {
	Pollutant   Pollutant
	Center      Geo
	Zoom        int
	BorderName  string
	Borders     *geojson.FeatureCollection // nil when no border layer is configured
	Markers     []Marker
	Animation   *geojson.FeatureCollection
	Options     AnimationOptions
	Range       ValueRange
	GeneratedAt time.Time
}

// Title is the human-readable heading of the document.
func (d MapDocument) Title() string {
	return "Predicted " + d.Pollutant.String() + " (" + d.Pollutant.Unit() + ")"
}

// FileName is the artifact name, e.g. "PM2.5.html".
func (d MapDocument) FileName() string {
	return d.Pollutant.String() + ".html"
}
