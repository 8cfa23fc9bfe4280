package domain

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// gradientLevels is the resolution of the continuous colour lookup table.
const gradientLevels = 256

// rdYlGnReversed lists the ColorBrewer RdYlGn nodes from green (low) to red (high).
var rdYlGnReversed = []string{
	"#006837", "#1a9850", "#66bd63", "#a6d96a", "#d9ef8b",
	"#ffffbf",
	"#fee08b", "#fdae61", "#f46d43", "#d73027", "#a50026",
}

var gradientLUT = buildGradientLUT(rdYlGnReversed, gradientLevels)

func buildGradientLUT(nodes []string, levels int) []string {
	stops := make([]colorful.Color, len(nodes))
	for i, hex := range nodes {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(err)
		}
		stops[i] = c
	}
	segments := float64(len(stops) - 1)

	lut := make([]string, levels)
	for i := range lut {
		pos := float64(i) / float64(levels-1) * segments
		lo := int(math.Floor(pos))
		if lo >= len(stops)-1 {
			lut[i] = stops[len(stops)-1].Hex()
			continue
		}
		lut[i] = stops[lo].BlendRgb(stops[lo+1], pos-float64(lo)).Hex()
	}
	return lut
}

// Normalize scales value into [0,1] against [vmin, vmax]. A degenerate range, or a
// NaN anywhere, maps to the midpoint.
func Normalize(value, vmin, vmax float64) float64 {
	if vmin == vmax || math.IsNaN(value) || math.IsNaN(vmin) || math.IsNaN(vmax) {
		return 0.5
	}
	n := (value - vmin) / (vmax - vmin)
	switch {
	case math.IsNaN(n):
		return 0.5
	case n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}

// GradientColor returns the ramp colour at a normalised position in [0,1].
func GradientColor(norm float64) string {
	idx := int(norm * gradientLevels)
	switch {
	case idx < 0:
		idx = 0
	case idx >= gradientLevels:
		idx = gradientLevels - 1
	}
	return gradientLUT[idx]
}

// ContinuousColor colours value on the green-to-red ramp relative to [vmin, vmax].
// It ignores the health index thresholds entirely.
func ContinuousColor(value, vmin, vmax float64) string {
	return GradientColor(Normalize(value, vmin, vmax))
}

// GradientStops returns n evenly spaced ramp colours, low to high, for legends.
func GradientStops(n int) []string {
	if n < 2 {
		n = 2
	}
	stops := make([]string, n)
	for i := range stops {
		stops[i] = GradientColor(float64(i) / float64(n-1))
	}
	return stops
}
