package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	// Each run owns its registry, so constructing twice must not panic.
	a := NewMetrics()
	b := NewMetrics()

	a.StationsSkipped.WithLabelValues("not_found").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.StationsSkipped.WithLabelValues("not_found")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.StationsSkipped.WithLabelValues("not_found")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.StationsLoaded.Set(12)
	m.ArtifactsWritten.WithLabelValues("map").Add(3)

	path := filepath.Join(t.TempDir(), "aqmaps.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "aqmaps_stations_loaded 12")
	assert.Contains(t, string(data), `aqmaps_artifacts_written_total{kind="map"} 3`)
}
