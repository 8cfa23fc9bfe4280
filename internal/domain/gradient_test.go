package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		vmin, vmax float64
		expected   float64
	}{
		{"midpoint", 50, 10, 90, 0.5},
		{"at min", 10, 10, 90, 0},
		{"at max", 90, 10, 90, 1},
		{"below min clamps", -5, 10, 90, 0},
		{"above max clamps", 500, 10, 90, 1},
		{"degenerate range", 42, 7, 7, 0.5},
		{"NaN value", math.NaN(), 0, 1, 0.5},
		{"infinite value and max", math.Inf(1), 0, math.Inf(1), 0.5},
		{"infinite max", 5, 0, math.Inf(1), 0},
		{"infinite min and value", math.Inf(-1), math.Inf(-1), 10, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Normalize(tt.value, tt.vmin, tt.vmax), 1e-12)
		})
	}
}

func TestNormalize_Monotonic(t *testing.T) {
	vmin, vmax := 3.0, 17.0
	prev := Normalize(-10, vmin, vmax)
	for v := -10.0; v <= 30; v += 0.25 {
		n := Normalize(v, vmin, vmax)
		assert.GreaterOrEqual(t, n, prev, "v=%g", v)
		prev = n
	}
}

func TestContinuousColor_DegenerateRangeIsMidpoint(t *testing.T) {
	mid := GradientColor(0.5)
	for _, v := range []float64{-1, 0, 7, 1e9} {
		assert.Equal(t, mid, ContinuousColor(v, 7, 7))
	}
}

func TestContinuousColor_Endpoints(t *testing.T) {
	assert.Equal(t, "#006837", ContinuousColor(10, 10, 90), "low values are green")
	assert.Equal(t, "#a50026", ContinuousColor(90, 10, 90), "high values are red")
	assert.Equal(t, ContinuousColor(-100, 10, 90), ContinuousColor(10, 10, 90))
	assert.Equal(t, ContinuousColor(1000, 10, 90), ContinuousColor(90, 10, 90))
}

func TestGradientLUT(t *testing.T) {
	assert.Len(t, gradientLUT, gradientLevels)
	for _, c := range gradientLUT {
		assert.Regexp(t, `^#[0-9a-f]{6}$`, c)
	}
}

func TestBuildGradientLUT_BadNodePanics(t *testing.T) {
	assert.Panics(t, func() { buildGradientLUT([]string{"#006837", "not-a-colour"}, 4) })
	assert.Equal(t, []string{"#000000", "#ffffff"}, buildGradientLUT([]string{"#000000", "#ffffff"}, 2))
}

func TestGradientStops(t *testing.T) {
	stops := GradientStops(5)
	assert.Len(t, stops, 5)
	assert.Equal(t, "#006837", stops[0])
	assert.Equal(t, "#a50026", stops[4])
	assert.Len(t, GradientStops(0), 2)
}
