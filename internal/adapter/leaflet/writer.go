// Package leaflet renders map documents as standalone Leaflet HTML pages.
package leaflet

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/air-quality-maps/internal/domain"
)

//go:embed templates/map.html.tmpl
var templates embed.FS

// legendStops is the number of colour stops drawn in the gradient legend.
const legendStops = 11

// Writer writes one HTML file per map document into a directory.
type Writer struct {
	dir    string
	tmpl   *template.Template
	logger *slog.Logger
}

// NewWriter parses the page template. Files are written under dir, which is
// created on first write.
func NewWriter(dir string, logger *slog.Logger) (*Writer, error) {
	tmpl, err := template.New("map.html.tmpl").Funcs(template.FuncMap{
		"toJSON": toJSON,
	}).ParseFS(templates, "templates/map.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse map template: %w", err)
	}
	return &Writer{dir: dir, tmpl: tmpl, logger: logger}, nil
}

type pageData struct {
	Title       string
	Pollutant   string
	Center      domain.Geo
	Zoom        int
	BorderName  string
	Borders     any
	Markers     []domain.Marker
	Animation   any
	Options     domain.AnimationOptions
	Range       domain.ValueRange
	Gradient    []string
	GeneratedAt string
}

// Render executes the page template for doc.
func (w *Writer) Render(out io.Writer, doc domain.MapDocument) error {
	data := pageData{
		Title:       doc.Title(),
		Pollutant:   doc.Pollutant.String(),
		Center:      doc.Center,
		Zoom:        doc.Zoom,
		BorderName:  doc.BorderName,
		Markers:     doc.Markers,
		Options:     doc.Options,
		Range:       doc.Range,
		Gradient:    domain.GradientStops(legendStops),
		GeneratedAt: doc.GeneratedAt.UTC().Format(time.RFC3339),
	}
	if data.Markers == nil {
		data.Markers = []domain.Marker{}
	}
	// Leave nil collections as untyped nil so the template's guards see them.
	if doc.Borders != nil {
		data.Borders = doc.Borders
	}
	if doc.Animation != nil {
		data.Animation = doc.Animation
	} else {
		data.Animation = map[string]any{"type": "FeatureCollection", "features": []any{}}
	}
	return w.tmpl.Execute(out, data)
}

// WriteMap renders doc to <dir>/<pollutant>.html and returns the path.
func (w *Writer) WriteMap(ctx context.Context, doc domain.MapDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := w.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render %s: %w", doc.FileName(), err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(w.dir, doc.FileName())
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	w.logger.Debug("map page written", "path", path, "bytes", buf.Len())
	return path, nil
}

func toJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
