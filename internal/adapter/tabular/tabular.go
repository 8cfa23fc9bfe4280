// Package tabular loads station metadata and per-station prediction files from CSV.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the EEA station metadata export and the prediction files.
const (
	ColStationName = "Air Quality Station Name"
	ColLongitude   = "Longitude"
	ColLatitude    = "Latitude"
	ColCountry     = "Country"
	ColDate        = "Date"
)

var frameOptions = []dataframe.LoadOption{
	dataframe.HasHeader(true),
	dataframe.DetectTypes(false),
	dataframe.DefaultType(series.String),
}

// readFrame loads a CSV with every column kept as text; typed parsing happens in
// the loaders so errors can name the offending cell. A header with no data rows
// yields a zero-row frame that still carries the column names.
func readFrame(r io.Reader) (dataframe.DataFrame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(records) == 1 {
		return headerOnlyFrame(records[0])
	}

	df := dataframe.LoadRecords(records, frameOptions...)
	if df.Err != nil {
		return df, df.Err
	}
	return df, nil
}

func headerOnlyFrame(header []string) (dataframe.DataFrame, error) {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		cols[i] = series.New([]string{}, series.String, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return df, df.Err
	}
	return df, nil
}

func readFrameFile(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	df, err := readFrame(f)
	if err != nil {
		return df, fmt.Errorf("read csv %s: %w", path, err)
	}
	return df, nil
}

func requireColumns(df dataframe.DataFrame, path string, cols ...string) error {
	have := make(map[string]bool, len(df.Names()))
	for _, n := range df.Names() {
		have[n] = true
	}
	for _, c := range cols {
		if !have[c] {
			return fmt.Errorf("%s: missing column %q", path, c)
		}
	}
	return nil
}
