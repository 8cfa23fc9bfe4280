package domain

import "time"

// HealthCell is one classified prediction value.
type HealthCell struct {
	Value    float64
	Present  bool
	Category Category
}

// Color is the discrete background colour of the cell, empty when no value.
func (c HealthCell) Color() string {
	if !c.Present {
		return ""
	}
	return c.Category.Color()
}

// HealthRow is one prediction row with every pollutant classified.
type HealthRow struct {
	StationName string
	Timestamp   time.Time
	Cells       []HealthCell // aligned with HealthTable.Pollutants
}

// HealthTable is the prediction set coloured with the discrete health index.
type HealthTable struct {
	Pollutants  []Pollutant
	Rows        []HealthRow
	Means       []HealthCell // per-pollutant mean, classified the same way
	GeneratedAt time.Time
}

// BuildHealthTable classifies every value of set on scale. It fails with
// ErrUnknownPollutant if set holds a pollutant the scale does not cover.
func BuildHealthTable(set *PredictionSet, scale *HealthScale) (HealthTable, error) {
	pollutants := set.Pollutants()
	boundaries := make([]HealthBoundary, len(pollutants))
	for i, p := range pollutants {
		b, err := scale.Boundary(p)
		if err != nil {
			return HealthTable{}, err
		}
		boundaries[i] = b
	}

	table := HealthTable{
		Pollutants:  pollutants,
		Rows:        make([]HealthRow, 0, set.Len()),
		Means:       make([]HealthCell, len(pollutants)),
		GeneratedAt: clock.Now(),
	}
	for _, r := range set.Rows() {
		row := HealthRow{StationName: r.StationName, Timestamp: r.Timestamp, Cells: make([]HealthCell, len(pollutants))}
		for i, p := range pollutants {
			if v, ok := r.Values[p]; ok {
				row.Cells[i] = HealthCell{Value: v, Present: true, Category: boundaries[i].Classify(v)}
			}
		}
		table.Rows = append(table.Rows, row)
	}
	for i, p := range pollutants {
		if mean, ok := set.Mean(p); ok {
			table.Means[i] = HealthCell{Value: mean, Present: true, Category: boundaries[i].Classify(mean)}
		}
	}
	return table, nil
}
