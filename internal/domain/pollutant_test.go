package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePollutant(t *testing.T) {
	for _, p := range Pollutants() {
		got, err := ParsePollutant(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePollutant("PM1")
	assert.ErrorIs(t, err, ErrUnknownPollutant)
}

func TestPollutantForColumn(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		expected     Pollutant
		isPrediction bool
		wantErr      bool
	}{
		{"pm2.5", "Predicted_PM2.5", PM25, true, false},
		{"no2 family", "Predicted_NOy", NOy, true, false},
		{"surrounding spaces", " Predicted_O3 ", O3, true, false},
		{"date column", "Date", 0, false, false},
		{"unknown pollutant", "Predicted_NH3", 0, true, true},
		{"case matters", "predicted_PM10", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, isPrediction, err := PollutantForColumn(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPollutant)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.isPrediction, isPrediction)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPredictionColumn_RoundTrip(t *testing.T) {
	for _, p := range Pollutants() {
		got, ok, err := PollutantForColumn(PredictionColumn(p))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}
}

func TestPollutant_Unit(t *testing.T) {
	assert.Equal(t, "mg.m-3", CO.Unit())
	assert.Equal(t, "ug.m-3", PM25.Unit())
}
