// Package report renders the health-index prediction table as HTML.
package report

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/air-quality-maps/internal/domain"
)

// TableFileName is the name of the artifact inside the output directory.
const TableFileName = "predictions_table.html"

//go:embed templates/table.html.tmpl
var templates embed.FS

// Writer writes the prediction table into a directory.
type Writer struct {
	dir    string
	tmpl   *template.Template
	logger *slog.Logger
}

// NewWriter parses the table template. The directory is created on first write.
func NewWriter(dir string, logger *slog.Logger) (*Writer, error) {
	tmpl, err := template.ParseFS(templates, "templates/table.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse table template: %w", err)
	}
	return &Writer{dir: dir, tmpl: tmpl, logger: logger}, nil
}

type legendEntry struct {
	Name  string
	Style template.CSS
}

type cellView struct {
	Text     string
	Category string
	Style    template.CSS
}

type rowView struct {
	Station string
	Time    string
	Cells   []cellView
}

type tableView struct {
	GeneratedAt string
	Legend      []legendEntry
	Headers     []string
	Rows        []rowView
	Means       []cellView
}

// Render executes the table template for table.
func (w *Writer) Render(out io.Writer, table domain.HealthTable) error {
	view := tableView{
		GeneratedAt: table.GeneratedAt.UTC().Format(time.RFC3339),
		Headers:     make([]string, len(table.Pollutants)),
		Rows:        make([]rowView, len(table.Rows)),
		Means:       make([]cellView, len(table.Means)),
	}
	for c := domain.Good; c <= domain.ExtremelyPoor; c++ {
		view.Legend = append(view.Legend, legendEntry{Name: c.String(), Style: background(c.Color())})
	}
	for i, p := range table.Pollutants {
		view.Headers[i] = p.String() + " (" + p.Unit() + ")"
	}
	for i, r := range table.Rows {
		rv := rowView{
			Station: r.StationName,
			Time:    r.Timestamp.UTC().Format(time.RFC3339),
			Cells:   make([]cellView, len(r.Cells)),
		}
		for j, cell := range r.Cells {
			rv.Cells[j] = newCellView(cell, -1)
		}
		view.Rows[i] = rv
	}
	for i, cell := range table.Means {
		view.Means[i] = newCellView(cell, 2)
	}
	return w.tmpl.Execute(out, view)
}

// WriteTable renders table to <dir>/predictions_table.html and returns the path.
func (w *Writer) WriteTable(ctx context.Context, table domain.HealthTable) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := w.Render(&buf, table); err != nil {
		return "", fmt.Errorf("render %s: %w", TableFileName, err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(w.dir, TableFileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	w.logger.Debug("table page written", "path", path, "rows", len(table.Rows))
	return path, nil
}

// newCellView formats a classified value; prec -1 keeps the shortest exact form.
func newCellView(cell domain.HealthCell, prec int) cellView {
	if !cell.Present {
		return cellView{}
	}
	return cellView{
		Text:     strconv.FormatFloat(cell.Value, 'f', prec, 64),
		Category: cell.Category.String(),
		Style:    background(cell.Color()),
	}
}

func background(color string) template.CSS {
	return template.CSS("background-color: " + color)
}
