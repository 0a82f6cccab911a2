// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the storefront.
// Pages are rendered into a buffer so handlers can cache the result
// before writing it out.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"catalogweb/internal/catalog"
	"catalogweb/internal/markdown"
)

//go:embed templates/store/*.html
var storeFS embed.FS

// PageData holds all data passed to storefront templates.
type PageData struct {
	SiteName    string             // Set by the renderer
	Title       string             // Page title for <title> tag
	Description string             // Meta description
	Nav         []catalog.NavGroup // Header dropdown
	Crumbs      []catalog.Crumb    // Breadcrumb trail, empty on the home page
	Data        map[string]any     // Page-specific data
}

// Renderer parses the storefront templates once and executes them by page
// name.
type Renderer struct {
	siteName  string
	templates map[string]*template.Template
}

// New creates a Renderer by parsing every page template from the embedded
// filesystem. Each page is paired with the base layout.
func New(siteName string) (*Renderer, error) {
	funcs := template.FuncMap{
		"markdown":       markdown.HTML,
		"categoryURL":    catalog.CategoryURL,
		"subCategoryURL": catalog.SubCategoryURL,
		"productURL":     catalog.ProductURL,
		"join":           strings.Join,
		"year":           func() int { return time.Now().Year() },
	}

	entries, err := fs.ReadDir(storeFS, "templates/store")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	rn := &Renderer{siteName: siteName, templates: make(map[string]*template.Template)}
	for _, e := range entries {
		name := e.Name()
		// base.html is the layout and _*.html are partials shared by pages.
		if e.IsDir() || name == "base.html" || strings.HasPrefix(name, "_") || !strings.HasSuffix(name, ".html") {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(
			storeFS, "templates/store/base.html", "templates/store/_*.html", "templates/store/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		rn.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}
	return rn, nil
}

// Render executes the named page into a byte slice.
func (rn *Renderer) Render(name string, data *PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := rn.Write(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write executes the named page into w.
func (rn *Renderer) Write(w io.Writer, name string, data *PageData) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	if data == nil {
		data = &PageData{}
	}
	data.SiteName = rn.siteName
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	return nil
}

// DownloadForm configures the catalog download form of a page. Field is
// "product" or "category" and Slug the record it asks for.
type DownloadForm struct {
	Field string
	Slug  string
}
