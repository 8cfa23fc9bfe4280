// Package shapefile reads ESRI shapefile boundary layers into GeoJSON.
package shapefile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// BorderLoader reads one shapefile bundle (.shp with its .shx and .dbf).
type BorderLoader struct {
	path   string
	logger *slog.Logger
}

// NewBorderLoader creates a loader for the .shp file at path.
func NewBorderLoader(path string, logger *slog.Logger) *BorderLoader {
	return &BorderLoader{path: path, logger: logger}
}

// LoadBorders converts every record to a GeoJSON feature. DBF attributes become
// feature properties. Null shapes are skipped.
func (l *BorderLoader) LoadBorders(ctx context.Context) (*geojson.FeatureCollection, error) {
	r, err := shp.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile %s: %w", l.path, err)
	}
	defer r.Close()

	fields := r.Fields()
	fc := geojson.NewFeatureCollection()
	skipped := 0
	for r.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, shape := r.Shape()
		geom, err := toGeometry(shape)
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", l.path, n, err)
		}
		if geom == nil {
			skipped++
			continue
		}

		f := geojson.NewFeature(geom)
		for i, field := range fields {
			f.Properties[field.String()] = strings.TrimSpace(r.ReadAttribute(n, i))
		}
		fc.Append(f)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read shapefile %s: %w", l.path, err)
	}

	l.logger.Info("borders loaded",
		"path", l.path,
		"features", len(fc.Features),
		"skipped", skipped,
	)
	return fc, nil
}

func toGeometry(shape shp.Shape) (orb.Geometry, error) {
	switch s := shape.(type) {
	case *shp.Null:
		return nil, nil
	case *shp.Point:
		return orb.Point{s.X, s.Y}, nil
	case *shp.MultiPoint:
		mp := make(orb.MultiPoint, len(s.Points))
		for i, p := range s.Points {
			mp[i] = orb.Point{p.X, p.Y}
		}
		return mp, nil
	case *shp.PolyLine:
		parts, err := splitParts(s.Parts, s.Points)
		if err != nil {
			return nil, err
		}
		if len(parts) == 1 {
			return orb.LineString(parts[0]), nil
		}
		mls := make(orb.MultiLineString, len(parts))
		for i, p := range parts {
			mls[i] = orb.LineString(p)
		}
		return mls, nil
	case *shp.Polygon:
		parts, err := splitParts(s.Parts, s.Points)
		if err != nil {
			return nil, err
		}
		return assemblePolygons(parts), nil
	default:
		return nil, fmt.Errorf("unsupported shape type %T", shape)
	}
}

// splitParts cuts the flat point list of a multi-part shape at its part offsets.
// Offsets must ascend and stay within the point list.
func splitParts(offsets []int32, points []shp.Point) ([][]orb.Point, error) {
	parts := make([][]orb.Point, 0, len(offsets))
	for i, start := range offsets {
		end := int32(len(points))
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		if start < 0 || start > end || end > int32(len(points)) {
			return nil, fmt.Errorf("part %d offsets [%d:%d] out of range for %d points", i, start, end, len(points))
		}
		part := make([]orb.Point, 0, end-start)
		for _, p := range points[start:end] {
			part = append(part, orb.Point{p.X, p.Y})
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// assemblePolygons groups shapefile rings into polygons. Clockwise rings are
// outer boundaries; counter-clockwise rings are holes of the outer ring that
// contains them. A hole with no containing outer ring is kept as its own polygon.
func assemblePolygons(parts [][]orb.Point) orb.Geometry {
	var polys []orb.Polygon
	var holes []orb.Ring
	for _, p := range parts {
		ring := orb.Ring(p)
		if ring.Orientation() == orb.CCW {
			holes = append(holes, ring)
			continue
		}
		polys = append(polys, orb.Polygon{ring})
	}

	for _, hole := range holes {
		attached := false
		for i := range polys {
			if planar.RingContains(polys[i][0], hole[0]) {
				polys[i] = append(polys[i], hole)
				attached = true
				break
			}
		}
		if !attached {
			polys = append(polys, orb.Polygon{hole})
		}
	}

	if len(polys) == 1 {
		return polys[0]
	}
	return orb.MultiPolygon(polys)
}
