// Command genmock writes synthetic prediction files for the stations of a
// metadata CSV, in the layout the map renderer reads. Values follow a daily
// cycle around each pollutant's Moderate threshold with seeded noise, so the
// output is reproducible for a given seed and start time.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -stations "data/Air pollution data/metadata/AirQualityStation.csv" \
//	  -country Finland -limit 5 -hours 72 \
//	  -start 2024-01-01 -out data/predictions
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/air-quality-maps/internal/adapter/tabular"
	"github.com/couchcryptid/air-quality-maps/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	stationFile := flag.String("stations", "", "station metadata CSV")
	country := flag.String("country", "Finland", "keep only stations of this country (empty = all)")
	outDir := flag.String("out", filepath.Join("data", "predictions"), "output directory")
	hours := flag.Int("hours", 48, "hourly rows per station")
	limit := flag.Int("limit", 0, "maximum number of stations (0 = all)")
	start := flag.String("start", "", "first timestamp (default: today 00:00 UTC)")
	seed := flag.Uint64("seed", 1, "random seed")
	pollutantList := flag.String("pollutants", "PM2.5,PM10,O3,NOy", "comma-separated pollutants")
	flag.Parse()

	if *stationFile == "" || *hours <= 0 {
		flag.Usage()
		return fmt.Errorf("missing required flag -stations or non-positive -hours")
	}

	pollutants, err := parsePollutants(*pollutantList)
	if err != nil {
		return err
	}

	first := domain.Now().UTC().Truncate(24 * time.Hour)
	// A fixed start freezes the clock so repeated runs produce identical files.
	if *start != "" {
		t, err := dateparse.ParseIn(*start, time.UTC)
		if err != nil {
			return fmt.Errorf("invalid -start: %w", err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(t))
		defer domain.SetClock(nil)
		first = domain.Now().UTC()
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stations, err := tabular.NewStationLoader(*stationFile, *country, logger).LoadStations(context.Background())
	if err != nil {
		return err
	}
	if *limit > 0 && len(stations) > *limit {
		stations = stations[:*limit]
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	gen := newGenerator(*seed, domain.DefaultHealthScale())
	written := 0
	for _, st := range stations {
		if strings.ContainsAny(st.Name, `/\`) {
			log.Printf("skipping %q: name is not a valid file name", st.Name)
			continue
		}
		df := gen.frame(pollutants, first, *hours)
		path := filepath.Join(*outDir, "predictions_station_"+st.Name+".csv")
		if err := writeFrame(path, df); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		written++
	}

	log.Printf("wrote %d prediction files (%d rows each) to %s", written, *hours, *outDir)
	return nil
}

func parsePollutants(list string) ([]domain.Pollutant, error) {
	var out []domain.Pollutant
	for _, s := range strings.Split(list, ",") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		p, err := domain.ParsePollutant(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no pollutants given")
	}
	return out, nil
}

type generator struct {
	rng   *rand.Rand
	scale *domain.HealthScale
}

func newGenerator(seed uint64, scale *domain.HealthScale) *generator {
	return &generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), scale: scale}
}

// frame builds one station's prediction table: a Date column and one
// Predicted_ column per pollutant.
func (g *generator) frame(pollutants []domain.Pollutant, first time.Time, hours int) dataframe.DataFrame {
	dates := make([]string, hours)
	for h := range dates {
		dates[h] = first.Add(time.Duration(h) * time.Hour).Format("2006-01-02 15:04:05")
	}

	cols := []series.Series{series.New(dates, series.String, tabular.ColDate)}
	for _, p := range pollutants {
		base := g.baseLevel(p)
		phase := g.rng.Float64() * 2 * math.Pi
		vals := make([]float64, hours)
		for h := range vals {
			cycle := 1 + 0.5*math.Sin(2*math.Pi*float64(h)/24+phase)
			v := base*cycle + g.rng.NormFloat64()*base*0.15
			vals[h] = math.Round(math.Max(v, 0)*100) / 100
		}
		cols = append(cols, series.New(vals, series.Float, domain.PredictionColumn(p)))
	}
	return dataframe.New(cols...)
}

func (g *generator) baseLevel(p domain.Pollutant) float64 {
	b, err := g.scale.Boundary(p)
	if err != nil {
		return 1
	}
	if level := b.Thresholds[2] * 0.6; level > 0 {
		return level
	}
	return 1
}

func writeFrame(path string, df dataframe.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
