package shapefile

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	outerSquare = []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	innerHole   = []shp.Point{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}, {X: 2, Y: 2}}
	islandShape = []shp.Point{{X: 20, Y: 20}, {X: 20, Y: 30}, {X: 30, Y: 30}, {X: 30, Y: 20}, {X: 20, Y: 20}}
)

func writePolygons(t *testing.T, path string, records map[string][][]shp.Point, order []string) {
	t.Helper()
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAME", 32)}))

	for _, name := range order {
		poly := shp.Polygon(*shp.NewPolyLine(records[name]))
		row := w.Write(&poly)
		require.NoError(t, w.WriteAttribute(int(row), 0, name))
	}
	w.Close()
	// go-shp's writer drops the dot before the dbf extension; the reader expects it.
	base := strings.TrimSuffix(path, ".shp")
	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
}

func TestLoadBorders_PolygonWithHole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fi.shp")
	writePolygons(t, path, map[string][][]shp.Point{
		"Mainland": {outerSquare, innerHole},
		"Islands":  {outerSquare, islandShape},
	}, []string{"Mainland", "Islands"})

	fc, err := NewBorderLoader(path, discardLogger()).LoadBorders(context.Background())
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	mainland := fc.Features[0]
	assert.Equal(t, "Mainland", mainland.Properties["NAME"])
	poly, ok := mainland.Geometry.(orb.Polygon)
	require.True(t, ok, "got %T", mainland.Geometry)
	require.Len(t, poly, 2, "hole attached to its outer ring")
	assert.Equal(t, orb.Point{2, 2}, poly[1][0])

	islands := fc.Features[1]
	assert.Equal(t, "Islands", islands.Properties["NAME"])
	mp, ok := islands.Geometry.(orb.MultiPolygon)
	require.True(t, ok, "got %T", islands.Geometry)
	assert.Len(t, mp, 2)
}

func TestLoadBorders_MissingFile(t *testing.T) {
	_, err := NewBorderLoader(filepath.Join(t.TempDir(), "none.shp"), discardLogger()).LoadBorders(context.Background())
	assert.Error(t, err)
}

func TestLoadBorders_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fi.shp")
	writePolygons(t, path, map[string][][]shp.Point{"Mainland": {outerSquare}}, []string{"Mainland"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBorderLoader(path, discardLogger()).LoadBorders(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssemblePolygons(t *testing.T) {
	toOrb := func(pts []shp.Point) []orb.Point {
		out := make([]orb.Point, len(pts))
		for i, p := range pts {
			out[i] = orb.Point{p.X, p.Y}
		}
		return out
	}

	tests := []struct {
		name     string
		parts    [][]shp.Point
		wantType string
		wantLen  int
	}{
		{"single outer ring", [][]shp.Point{outerSquare}, "Polygon", 1},
		{"outer with hole", [][]shp.Point{outerSquare, innerHole}, "Polygon", 2},
		{"two outer rings", [][]shp.Point{outerSquare, islandShape}, "MultiPolygon", 2},
		{"orphan hole becomes polygon", [][]shp.Point{islandShape, innerHole}, "MultiPolygon", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := make([][]orb.Point, len(tt.parts))
			for i, p := range tt.parts {
				parts[i] = toOrb(p)
			}
			geom := assemblePolygons(parts)
			assert.Equal(t, tt.wantType, geom.GeoJSONType())
			switch g := geom.(type) {
			case orb.Polygon:
				assert.Len(t, g, tt.wantLen)
			case orb.MultiPolygon:
				assert.Len(t, g, tt.wantLen)
			}
		})
	}
}

func TestToGeometry_PolyLine(t *testing.T) {
	line := shp.NewPolyLine([][]shp.Point{
		{{X: 0, Y: 0}, {X: 1, Y: 1}},
		{{X: 5, Y: 5}, {X: 6, Y: 6}, {X: 7, Y: 7}},
	})
	geom, err := toGeometry(line)
	require.NoError(t, err)
	mls, ok := geom.(orb.MultiLineString)
	require.True(t, ok)
	require.Len(t, mls, 2)
	assert.Len(t, mls[1], 3)

	pt, err := toGeometry(&shp.Point{X: 24.9, Y: 60.1})
	require.NoError(t, err)
	assert.Equal(t, orb.Point{24.9, 60.1}, pt)

	null, err := toGeometry(&shp.Null{})
	require.NoError(t, err)
	assert.Nil(t, null)
}

func TestSplitParts(t *testing.T) {
	pts := []shp.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}

	parts, err := splitParts([]int32{0, 1}, pts)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 1)
	assert.Equal(t, []orb.Point{{1, 1}, {2, 2}, {3, 3}}, parts[1])

	for _, offsets := range [][]int32{{0, 9}, {2, 1}, {-1}, {5}} {
		_, err := splitParts(offsets, pts)
		assert.Error(t, err, "offsets %v", offsets)
	}
}

func TestToGeometry_CorruptPartOffsets(t *testing.T) {
	poly := &shp.Polygon{
		NumParts:  2,
		NumPoints: 3,
		Parts:     []int32{0, 7},
		Points:    []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}},
	}
	_, err := toGeometry(poly)
	assert.ErrorContains(t, err, "out of range")

	line := &shp.PolyLine{NumParts: 1, NumPoints: 1, Parts: []int32{3}, Points: []shp.Point{{X: 0, Y: 0}}}
	_, err = toGeometry(line)
	assert.Error(t, err)
}
