// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pdf generates downloadable product and category catalogs. A
// catalog is rendered from an embedded HTML template, printed by a
// headless browser and appended to a cover document.
package pdf

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"catalogweb/internal/catalog"
	"catalogweb/internal/markdown"
	"catalogweb/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// s3Prefix marks a cover path that names an object in the storage bucket.
const s3Prefix = "s3://"

// Downloader fetches an object from storage. storage.Client satisfies it.
type Downloader interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// Options configures a Generator.
type Options struct {
	// BaseURL is the public storefront address used in QR codes and links.
	BaseURL string

	// CoverPath is a local file or an "s3://<key>" object holding the
	// cover PDF. Empty selects the built-in cover.
	CoverPath string

	// Storage resolves "s3://" cover paths. May be nil.
	Storage Downloader

	// SiteName is printed on the built-in cover and page footers.
	SiteName string
}

// Generator renders catalogs. It is safe for concurrent use.
type Generator struct {
	printer Printer
	opts    Options
	tmpl    *template.Template
	now     func() time.Time

	coverMu sync.Mutex
	cover   []byte
}

// ProductSheet is the data of a single-product catalog.
type ProductSheet struct {
	Product     models.Product
	Category    *models.Category
	SubCategory *models.SubCategory
	Specs       []models.TechnicalSpec
}

// CategorySection groups the products listed under one sub-category. A
// nil SubCategory holds products attached directly to the category.
type CategorySection struct {
	SubCategory *models.SubCategory
	Products    []ProductSheet
}

// CategoryBook is the data of a category catalog.
type CategoryBook struct {
	Category models.Category
	Sections []CategorySection
}

// NewGenerator parses the embedded templates and returns a Generator.
func NewGenerator(printer Printer, opts Options) (*Generator, error) {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.SiteName == "" {
		opts.SiteName = "Product Catalog"
	}

	funcs := template.FuncMap{
		"markdown":    markdown.HTML,
		"qr":          qrDataURI,
		"productURL":  func(slug string) string { return opts.BaseURL + catalog.ProductURL(slug) },
		"categoryURL": func(slug string) string { return opts.BaseURL + catalog.CategoryURL(slug) },
		"join":        strings.Join,
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse catalog templates: %w", err)
	}

	return &Generator{
		printer: printer,
		opts:    opts,
		tmpl:    tmpl,
		now:     time.Now,
	}, nil
}

// qrDataURI encodes content as a PNG QR code data URI for <img src>.
func qrDataURI(content string) (template.URL, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}

// pageData wraps template data with fields every template uses.
type pageData struct {
	SiteName    string
	BaseURL     string
	GeneratedAt time.Time
	Title       string
	Data        any
}

func (g *Generator) renderHTML(name, title string, data any) (string, error) {
	var buf bytes.Buffer
	err := g.tmpl.ExecuteTemplate(&buf, name, pageData{
		SiteName:    g.opts.SiteName,
		BaseURL:     g.opts.BaseURL,
		GeneratedAt: g.now(),
		Title:       title,
		Data:        data,
	})
	if err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.String(), nil
}

// ProductCatalog renders the catalog of a single product, cover first.
func (g *Generator) ProductCatalog(ctx context.Context, sheet ProductSheet) ([]byte, error) {
	html, err := g.renderHTML("product.html", sheet.Product.Name, sheet)
	if err != nil {
		return nil, err
	}
	return g.withCover(ctx, html)
}

// CategoryCatalog renders the catalog of a category and its products,
// cover first.
func (g *Generator) CategoryCatalog(ctx context.Context, book CategoryBook) ([]byte, error) {
	html, err := g.renderHTML("category.html", book.Category.Name, book)
	if err != nil {
		return nil, err
	}
	return g.withCover(ctx, html)
}

func (g *Generator) withCover(ctx context.Context, html string) ([]byte, error) {
	body, err := g.printer.PrintHTML(ctx, html)
	if err != nil {
		return nil, err
	}

	cover, err := g.Cover(ctx)
	if err != nil {
		return nil, err
	}

	return Merge(cover, body)
}

// Cover returns the cover PDF, loading or rendering it on first use.
// Failures are not cached so a later request can retry.
func (g *Generator) Cover(ctx context.Context) ([]byte, error) {
	g.coverMu.Lock()
	defer g.coverMu.Unlock()

	if g.cover != nil {
		return g.cover, nil
	}

	cover, err := g.loadCover(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog cover: %w", err)
	}
	g.cover = cover
	return cover, nil
}

func (g *Generator) loadCover(ctx context.Context) ([]byte, error) {
	path := g.opts.CoverPath
	switch {
	case path == "":
		html, err := g.renderHTML("cover.html", g.opts.SiteName, nil)
		if err != nil {
			return nil, err
		}
		slog.Info("rendering built-in catalog cover")
		return g.printer.PrintHTML(ctx, html)

	case strings.HasPrefix(path, s3Prefix):
		if g.opts.Storage == nil {
			return nil, fmt.Errorf("cover %s requires object storage", path)
		}
		return g.opts.Storage.Download(ctx, strings.TrimPrefix(path, s3Prefix))

	default:
		return os.ReadFile(path)
	}
}
