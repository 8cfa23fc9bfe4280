package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPollutant is returned for pollutant identifiers or prediction
	// columns that have no entry in the pollutant table.
	ErrUnknownPollutant = errors.New("unknown pollutant")

	// ErrNoPredictionFiles is returned when prediction discovery matches nothing.
	ErrNoPredictionFiles = errors.New("no prediction files")

	// ErrStationNotFound marks a station referenced by predictions that has no
	// metadata row. It is logged and skipped, never fatal.
	ErrStationNotFound = errors.New("station not found")
)

// DateParseError reports a Date cell that could not be parsed. Any such error
// aborts the whole prediction load.
type DateParseError struct {
	File  string
	Row   int // 1-based data row, header excluded
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse date %q in %s row %d: %v", e.Value, e.File, e.Row, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }
