package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aqmaps"

// Metrics holds the counters and gauges of one batch run. They live on a private
// registry and are flushed once at the end of the run with WriteTextfile.
type Metrics struct {
	registry *prometheus.Registry

	StationsLoaded     prometheus.Gauge
	PredictionStations prometheus.Gauge
	PredictionRows     prometheus.Gauge
	StationsSkipped    *prometheus.CounterVec // labels: reason={not_found,no_predictions}
	ArtifactsWritten   *prometheus.CounterVec // labels: kind={map,table}
	RunDuration        prometheus.Gauge
	LastSuccess        prometheus.Gauge
}

// NewMetrics creates the run metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		StationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stations_loaded",
			Help:      "Deduplicated stations read from the metadata file.",
		}),
		PredictionStations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "prediction_stations",
			Help:      "Stations with at least one merged prediction row.",
		}),
		PredictionRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "prediction_rows",
			Help:      "Rows in the merged prediction set.",
		}),
		StationsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_skipped_total",
			Help:      "Stations left off a map, by reason.",
		}, []string{"reason"}),
		ArtifactsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_written_total",
			Help:      "HTML artifacts written, by kind.",
		}, []string{"kind"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that wrote every artifact.",
		}),
	}

	m.registry.MustRegister(
		m.StationsLoaded,
		m.PredictionStations,
		m.PredictionRows,
		m.StationsSkipped,
		m.ArtifactsWritten,
		m.RunDuration,
		m.LastSuccess,
	)

	return m
}

// WriteTextfile writes the current values in Prometheus text format, for pickup
// by the node_exporter textfile collector. The write is atomic.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
