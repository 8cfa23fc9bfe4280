package domain

import (
	"errors"
	"fmt"
	"sort"
)

// Category is a tier of the six-level health index.
type Category int

const (
	Good Category = iota
	Fair
	Moderate
	Poor
	VeryPoor
	ExtremelyPoor
)

// CategoryCount is the number of tiers, thresholds and colours per pollutant.
const CategoryCount = 6

var categoryNames = [CategoryCount]string{"Good", "Fair", "Moderate", "Poor", "Very poor", "Extremely poor"}

// Display colours per tier: green, green, yellow, red, purple, purple.
var categoryColors = [CategoryCount]string{"#008000", "#008000", "#ffff00", "#ff0000", "#800080", "#800080"}

func (c Category) String() string {
	if c < Good || c > ExtremelyPoor {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Color returns the discrete display colour of the tier as a hex string.
func (c Category) Color() string {
	if c < Good || c > ExtremelyPoor {
		return ""
	}
	return categoryColors[c]
}

// HealthBoundary holds the six ascending concentration thresholds of one pollutant.
// The first and last threshold are the lower and upper clamp of the scale.
type HealthBoundary struct {
	Pollutant  Pollutant
	Thresholds [CategoryCount]float64
}

// Min is the lower clamp bound of the scale.
func (b HealthBoundary) Min() float64 { return b.Thresholds[0] }

// Max is the upper clamp bound of the scale.
func (b HealthBoundary) Max() float64 { return b.Thresholds[CategoryCount-1] }

// Classify returns the tier for value: the number of thresholds reached, capped at
// the last tier. Thresholds are lower-inclusive.
func (b HealthBoundary) Classify(value float64) Category {
	// First index whose threshold is strictly greater than value.
	n := sort.Search(CategoryCount, func(i int) bool { return b.Thresholds[i] > value })
	if n > int(ExtremelyPoor) {
		return ExtremelyPoor
	}
	return Category(n)
}

func (b HealthBoundary) validate() error {
	for i := 1; i < CategoryCount; i++ {
		if b.Thresholds[i] < b.Thresholds[i-1] {
			return fmt.Errorf("%s thresholds decrease at index %d (%g < %g)",
				b.Pollutant, i, b.Thresholds[i], b.Thresholds[i-1])
		}
	}
	return nil
}

// HealthScale is the immutable per-pollutant threshold table.
type HealthScale struct {
	boundaries map[Pollutant]HealthBoundary
}

// NewHealthScale validates and indexes a threshold table. Thresholds must be
// non-decreasing and each pollutant may appear once.
func NewHealthScale(boundaries []HealthBoundary) (*HealthScale, error) {
	if len(boundaries) == 0 {
		return nil, errors.New("health scale: no boundaries")
	}
	s := &HealthScale{boundaries: make(map[Pollutant]HealthBoundary, len(boundaries))}
	for _, b := range boundaries {
		if _, dup := s.boundaries[b.Pollutant]; dup {
			return nil, fmt.Errorf("health scale: duplicate boundary for %s", b.Pollutant)
		}
		if err := b.validate(); err != nil {
			return nil, fmt.Errorf("health scale: %w", err)
		}
		s.boundaries[b.Pollutant] = b
	}
	return s, nil
}

// NewHealthScaleFromSlices builds a scale from variable-length threshold slices,
// as found in hand-written configuration. Each slice must hold exactly six values.
func NewHealthScaleFromSlices(table map[Pollutant][]float64) (*HealthScale, error) {
	boundaries := make([]HealthBoundary, 0, len(table))
	for _, p := range Pollutants() {
		thresholds, ok := table[p]
		if !ok {
			continue
		}
		if len(thresholds) != CategoryCount {
			return nil, fmt.Errorf("health scale: %s has %d thresholds, want %d", p, len(thresholds), CategoryCount)
		}
		b := HealthBoundary{Pollutant: p}
		copy(b.Thresholds[:], thresholds)
		boundaries = append(boundaries, b)
	}
	if len(boundaries) != len(table) {
		return nil, fmt.Errorf("health scale: %w in table", ErrUnknownPollutant)
	}
	return NewHealthScale(boundaries)
}

// Boundary returns the thresholds for p.
func (s *HealthScale) Boundary(p Pollutant) (HealthBoundary, error) {
	b, ok := s.boundaries[p]
	if !ok {
		return HealthBoundary{}, fmt.Errorf("%w: %s has no health boundary", ErrUnknownPollutant, p)
	}
	return b, nil
}

// Classify maps a concentration of p to its health tier.
func (s *HealthScale) Classify(p Pollutant, value float64) (Category, error) {
	b, err := s.Boundary(p)
	if err != nil {
		return 0, err
	}
	return b.Classify(value), nil
}

// europeanAQI holds the regulatory thresholds. Pb is published with five values;
// its upper clamp is repeated to complete the six-step scale.
var europeanAQI = map[Pollutant][]float64{
	PM25: {5, 11, 33, 71, 116, 140},
	PM10: {15, 31, 83, 158, 233, 270},
	O3:   {60, 81, 111, 141, 171, 180},
	NOy:  {10, 18, 43, 81, 126, 150},
	SO2:  {20, 31, 83, 158, 233, 275},
	CO:   {0, 0, 5, 7, 10, 10},
	Pb:   {0, 0, 0.25, 0.35, 0.5, 0.5},
	C6H6: {0, 0, 2, 3.5, 5, 5},
}

var defaultScale = mustHealthScale(europeanAQI)

// DefaultHealthScale returns the process-wide European Air Quality Index scale.
// The returned value is shared and never mutated.
func DefaultHealthScale() *HealthScale {
	return defaultScale
}

func mustHealthScale(table map[Pollutant][]float64) *HealthScale {
	s, err := NewHealthScaleFromSlices(table)
	if err != nil {
		panic(err)
	}
	return s
}
