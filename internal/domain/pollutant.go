package domain

import (
	"fmt"
	"strings"
)

// Pollutant identifies one measured or predicted species.
type Pollutant int

const (
	SO2 Pollutant = iota + 1
	PM10
	NOy
	O3
	CO
	C6H6
	PM25
	Pb
)

var pollutantNames = map[Pollutant]string{
	SO2:  "SO2",
	PM10: "PM10",
	NOy:  "NOy",
	O3:   "O3",
	CO:   "CO",
	C6H6: "C6H6",
	PM25: "PM2.5",
	Pb:   "Pb",
}

// Pollutants lists every known pollutant in a stable order.
func Pollutants() []Pollutant {
	return []Pollutant{SO2, PM10, NOy, O3, CO, C6H6, PM25, Pb}
}

func (p Pollutant) String() string {
	if name, ok := pollutantNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Pollutant(%d)", int(p))
}

// Unit returns the concentration unit the thresholds are expressed in.
func (p Pollutant) Unit() string {
	if p == CO {
		return "mg.m-3"
	}
	return "ug.m-3"
}

// ParsePollutant resolves an identifier such as "PM2.5" or "NOy".
func ParsePollutant(s string) (Pollutant, error) {
	s = strings.TrimSpace(s)
	for p, name := range pollutantNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPollutant, s)
}

// PredictionColumnPrefix precedes the pollutant name in prediction file headers.
const PredictionColumnPrefix = "Predicted_"

// predictionColumns is the explicit header -> pollutant table. Headers are matched
// exactly; nothing is inferred from the column text at runtime.
var predictionColumns = map[string]Pollutant{
	"Predicted_SO2":   SO2,
	"Predicted_PM10":  PM10,
	"Predicted_NOy":   NOy,
	"Predicted_O3":    O3,
	"Predicted_CO":    CO,
	"Predicted_C6H6":  C6H6,
	"Predicted_PM2.5": PM25,
	"Predicted_Pb":    Pb,
}

// PollutantForColumn maps a prediction file header to its pollutant. The second
// return is false for headers that are not prediction columns at all; a header
// carrying the prediction prefix but an unknown pollutant returns ErrUnknownPollutant.
func PollutantForColumn(header string) (Pollutant, bool, error) {
	header = strings.TrimSpace(header)
	if p, ok := predictionColumns[header]; ok {
		return p, true, nil
	}
	if strings.HasPrefix(header, PredictionColumnPrefix) {
		return 0, true, fmt.Errorf("%w: column %q", ErrUnknownPollutant, header)
	}
	return 0, false, nil
}

// PredictionColumn returns the header used for p in prediction files.
func PredictionColumn(p Pollutant) string {
	return PredictionColumnPrefix + p.String()
}
