package domain

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Reading is one predicted concentration of one pollutant at one station.
type Reading struct {
	StationName string
	Pollutant   Pollutant
	Timestamp   time.Time
	Value       float64
}

// PredictionRow is one record of a prediction file. Pollutants whose cell was
// empty are absent from Values.
type PredictionRow struct {
	StationName string
	Timestamp   time.Time
	Values      map[Pollutant]float64
}

// ValueRange is the observed min/max of one pollutant.
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PredictionSet is the merged table of all station prediction files. It is built
// once per run and read-only afterwards.
type PredictionSet struct {
	rows       []PredictionRow
	pollutants []Pollutant
	stations   []string
	byStation  map[string][]int
}

// NewPredictionSet wraps rows in file order. Pollutants and stations are recorded
// in first-seen order.
func NewPredictionSet(rows []PredictionRow, pollutants []Pollutant) *PredictionSet {
	set := &PredictionSet{rows: rows, byStation: make(map[string][]int)}

	seenPollutant := make(map[Pollutant]bool)
	for _, p := range pollutants {
		if !seenPollutant[p] {
			seenPollutant[p] = true
			set.pollutants = append(set.pollutants, p)
		}
	}

	seenStation := make(map[string]bool)
	for i, r := range rows {
		if !seenStation[r.StationName] {
			seenStation[r.StationName] = true
			set.stations = append(set.stations, r.StationName)
		}
		set.byStation[r.StationName] = append(set.byStation[r.StationName], i)
		for p := range r.Values {
			if !seenPollutant[p] {
				seenPollutant[p] = true
				set.pollutants = append(set.pollutants, p)
			}
		}
	}
	return set
}

// Len is the number of merged rows.
func (s *PredictionSet) Len() int { return len(s.rows) }

// Rows returns the merged rows. Callers must not modify them.
func (s *PredictionSet) Rows() []PredictionRow { return s.rows }

// Pollutants returns the pollutants present, in column order of first appearance.
func (s *PredictionSet) Pollutants() []Pollutant {
	return append([]Pollutant(nil), s.pollutants...)
}

// Stations returns the distinct station names in discovery order.
func (s *PredictionSet) Stations() []string {
	return append([]string(nil), s.stations...)
}

// Readings flattens the rows of one pollutant, preserving row order.
func (s *PredictionSet) Readings(p Pollutant) []Reading {
	var out []Reading
	for _, r := range s.rows {
		v, ok := r.Values[p]
		if !ok {
			continue
		}
		out = append(out, Reading{StationName: r.StationName, Pollutant: p, Timestamp: r.Timestamp, Value: v})
	}
	return out
}

// StationReadings returns the readings of p for a single station, in row order.
func (s *PredictionSet) StationReadings(station string, p Pollutant) []Reading {
	var out []Reading
	for _, i := range s.byStation[station] {
		r := s.rows[i]
		if v, ok := r.Values[p]; ok {
			out = append(out, Reading{StationName: station, Pollutant: p, Timestamp: r.Timestamp, Value: v})
		}
	}
	return out
}

func (s *PredictionSet) values(p Pollutant) []float64 {
	var vals []float64
	for _, r := range s.rows {
		if v, ok := r.Values[p]; ok {
			vals = append(vals, v)
		}
	}
	return vals
}

// Range returns the global min/max of p across every station. ok is false when
// the set holds no value for p.
func (s *PredictionSet) Range(p Pollutant) (ValueRange, bool) {
	vals := s.values(p)
	if len(vals) == 0 {
		return ValueRange{}, false
	}
	return ValueRange{Min: floats.Min(vals), Max: floats.Max(vals)}, true
}

// Mean returns the arithmetic mean of p across every station.
func (s *PredictionSet) Mean(p Pollutant) (float64, bool) {
	vals := s.values(p)
	if len(vals) == 0 {
		return 0, false
	}
	return stat.Mean(vals, nil), true
}
