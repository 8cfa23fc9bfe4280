package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Geo is a WGS-84 latitude/longitude pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Station is one physical monitoring point.
type Station struct {
	Name      string  `json:"name" validate:"required"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
}

// Geo returns the station position.
func (s Station) Geo() Geo {
	return Geo{Lat: s.Latitude, Lon: s.Longitude}
}

// Validate checks the name is set and the coordinates are on the globe.
func (s Station) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("station %q: %w", s.Name, err)
	}
	return nil
}

// StationIndex looks stations up by name.
type StationIndex map[string]Station

// IndexStations builds a name index. Later duplicates never replace earlier ones.
func IndexStations(stations []Station) StationIndex {
	idx := make(StationIndex, len(stations))
	for _, s := range stations {
		if _, seen := idx[s.Name]; !seen {
			idx[s.Name] = s
		}
	}
	return idx
}

// Lookup returns the station named name, or ErrStationNotFound.
func (idx StationIndex) Lookup(name string) (Station, error) {
	s, ok := idx[name]
	if !ok {
		return Station{}, fmt.Errorf("%w: %q", ErrStationNotFound, name)
	}
	return s, nil
}
