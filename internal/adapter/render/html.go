// Package render projects products into display cards and renders the
// catalog page.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/niksmo/makeup-catalog/internal/core/domain"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// Assets holds static files served next to the page, e.g. img/unavailable.png.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err) // develop mistake
	}
	return sub
}

type Choice struct {
	Label    string
	Value    string
	Selected bool
}

// A Page is everything the catalog template shows.
type Page struct {
	Title  string
	Alert  string
	Name   string
	Brands []Choice
	Types  []Choice
	Sorts  []Choice
	Cards  []Card
}

func NewPage(
	cards []Card, opts domain.Options, c domain.Criteria, key domain.SortKey,
) Page {
	sorts := make([]Choice, len(domain.SortKeys))
	for i, k := range domain.SortKeys {
		sorts[i] = Choice{Label: k.Label(), Value: string(k), Selected: k == key}
	}

	return Page{
		Title:  "Catalog",
		Name:   c.Name,
		Brands: choices(opts.Brands, c.Brand),
		Types:  choices(opts.Types, c.Type),
		Sorts:  sorts,
		Cards:  cards,
	}
}

func choices(opts []domain.Option, selected string) []Choice {
	out := make([]Choice, len(opts))
	for i, o := range opts {
		out[i] = Choice{
			Label:    o.Label,
			Value:    o.Value,
			Selected: o.Value != "" && o.Value == selected,
		}
	}
	return out
}

type HTML struct {
	tmpl *template.Template
}

func NewHTML() (HTML, error) {
	const op = "render.NewHTML"

	tmpl, err := template.ParseFS(templatesFS, "templates/catalog.html.tmpl")
	if err != nil {
		return HTML{}, fmt.Errorf("%s: %w", op, err)
	}
	return HTML{tmpl}, nil
}

// Render writes the whole page; previous output is never patched.
func (h HTML) Render(w io.Writer, p Page) error {
	const op = "HTML.Render"

	if err := h.tmpl.ExecuteTemplate(w, "catalog.html.tmpl", p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
