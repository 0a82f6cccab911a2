// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalogweb/internal/cache"
	"catalogweb/internal/catalog"
	"catalogweb/internal/models"
	"catalogweb/internal/render"
	"catalogweb/internal/store"
)

// Public groups handlers for the storefront. It checks the Valkey page
// cache before rendering and stores rendered pages on a miss. Missing or
// inactive records render the 404 page, which is never cached.
type Public struct {
	renderer      *render.Renderer
	categories    CategoryRepo
	subCategories SubCategoryRepo
	products      ProductRepo
	pages         PageCache
	captcha       string
}

// NewPublic creates the storefront handler group.
func NewPublic(renderer *render.Renderer, categories CategoryRepo, subCategories SubCategoryRepo, products ProductRepo, pages PageCache, captcha string) *Public {
	return &Public{
		renderer:      renderer,
		categories:    categories,
		subCategories: subCategories,
		products:      products,
		pages:         pages,
		captcha:       captcha,
	}
}

// page is what a storefront builder produces. A nil page means not found.
type page struct {
	name string
	data *render.PageData
}

type pageBuilder func(ctx context.Context, r *http.Request) (*page, error)

// serve answers from the cache or builds, renders and caches the page.
func (p *Public) serve(w http.ResponseWriter, r *http.Request, build pageBuilder) {
	ctx := r.Context()
	key := cache.PathKey(r.URL.Path)

	if p.pages != nil {
		if cached, ok := p.pages.Get(ctx, key); ok {
			writeHTML(w, http.StatusOK, cached)
			return
		}
	}

	pg, err := build(ctx, r)
	if err != nil {
		slog.Error("build storefront page failed", "error", err, "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if pg == nil {
		p.NotFound(w, r)
		return
	}

	nav, err := p.navigation(ctx)
	if err != nil {
		slog.Error("build navigation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	pg.data.Nav = nav

	out, err := p.renderer.Render(pg.name, pg.data)
	if err != nil {
		slog.Error("render storefront page failed", "error", err, "template", pg.name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if p.pages != nil {
		p.pages.Set(ctx, key, out)
	}
	writeHTML(w, http.StatusOK, out)
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// navigation loads the header menu: active categories with their active
// sub-categories.
func (p *Public) navigation(ctx context.Context) ([]catalog.NavGroup, error) {
	active := store.Filter{Status: models.StatusActive}
	cats, err := p.categories.List(ctx, active)
	if err != nil {
		return nil, err
	}
	subs, err := p.subCategories.List(ctx, active)
	if err != nil {
		return nil, err
	}
	return catalog.BuildNavigation(cats, subs), nil
}

// NotFound renders the storefront 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	data := &render.PageData{Title: "Page not found"}
	if nav, err := p.navigation(r.Context()); err == nil {
		data.Nav = nav
	}
	out, err := p.renderer.Render("not_found", data)
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeHTML(w, http.StatusNotFound, out)
}

// Home lists the active categories and featured products.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context, _ *http.Request) (*page, error) {
		cats, err := p.categories.List(ctx, store.Filter{Status: models.StatusActive})
		if err != nil {
			return nil, err
		}
		featured := true
		products, err := p.products.List(ctx, store.Filter{Status: models.StatusActive, Featured: &featured})
		if err != nil {
			return nil, err
		}
		return &page{name: "home", data: &render.PageData{
			Data: map[string]any{"Categories": cats, "Featured": products},
		}}, nil
	})
}

// activeCategory finds an active category by slug.
func (p *Public) activeCategory(ctx context.Context, slug string) (*models.Category, error) {
	c, err := p.categories.FindBySlug(ctx, slug)
	if err != nil || c == nil || !c.IsActive() {
		return nil, err
	}
	return c, nil
}

// Category shows a category with its sub-categories and the products
// attached to it directly.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context, r *http.Request) (*page, error) {
		c, err := p.activeCategory(ctx, chi.URLParam(r, "slug"))
		if err != nil || c == nil {
			return nil, err
		}

		subs, err := p.subCategories.List(ctx, store.Filter{Status: models.StatusActive, CategoryID: &c.ID})
		if err != nil {
			return nil, err
		}
		all, err := p.products.List(ctx, store.Filter{Status: models.StatusActive, CategoryID: &c.ID})
		if err != nil {
			return nil, err
		}
		var direct []models.Product
		for _, prod := range all {
			if prod.SubCategoryID == nil {
				direct = append(direct, prod)
			}
		}

		return &page{name: "category", data: &render.PageData{
			Title:  c.Name,
			Crumbs: catalog.Breadcrumbs(c, nil),
			Data: map[string]any{
				"Category":      c,
				"SubCategories": subs,
				"Products":      direct,
				"Download":      render.DownloadForm{Field: "category", Slug: c.Slug},
			},
		}}, nil
	})
}

// SubCategory shows the products of a sub-category. The sub-category must
// belong to the category named in the path.
func (p *Public) SubCategory(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context, r *http.Request) (*page, error) {
		c, err := p.activeCategory(ctx, chi.URLParam(r, "slug"))
		if err != nil || c == nil {
			return nil, err
		}
		sc, err := p.subCategories.FindBySlug(ctx, chi.URLParam(r, "subSlug"))
		if err != nil {
			return nil, err
		}
		if sc == nil || !sc.IsActive() || sc.CategoryID != c.ID {
			return nil, nil
		}

		products, err := p.products.List(ctx, store.Filter{Status: models.StatusActive, SubCategoryID: &sc.ID})
		if err != nil {
			return nil, err
		}

		return &page{name: "subcategory", data: &render.PageData{
			Title:  sc.Name,
			Crumbs: catalog.Breadcrumbs(c, sc),
			Data: map[string]any{
				"Category":    c,
				"SubCategory": sc,
				"Products":    products,
				"Download":    render.DownloadForm{Field: "category", Slug: c.Slug},
			},
		}}, nil
	})
}

// Product shows a product with its technical specs.
func (p *Public) Product(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context, r *http.Request) (*page, error) {
		prod, err := p.products.FindBySlug(ctx, chi.URLParam(r, "slug"))
		if err != nil {
			return nil, err
		}
		if prod == nil || !prod.IsActive() {
			return nil, nil
		}
		if prod.Specs, err = p.products.Specs(ctx, prod.ID); err != nil {
			return nil, err
		}

		var (
			c  *models.Category
			sc *models.SubCategory
		)
		if prod.CategoryID != nil {
			if c, err = p.categories.FindByID(ctx, *prod.CategoryID); err != nil {
				return nil, err
			}
		}
		if prod.SubCategoryID != nil {
			if sc, err = p.subCategories.FindByID(ctx, *prod.SubCategoryID); err != nil {
				return nil, err
			}
		}
		if c != nil && !c.IsActive() {
			return nil, nil
		}
		if sc != nil && !sc.IsActive() {
			sc = nil
		}

		return &page{name: "product", data: &render.PageData{
			Title:       prod.Name,
			Description: prod.Name,
			Crumbs:      catalog.Breadcrumbs(c, sc),
			Data: map[string]any{
				"Product":  prod,
				"Download": render.DownloadForm{Field: "product", Slug: prod.Slug},
			},
		}}, nil
	})
}

// Contact shows the contact form.
func (p *Public) Contact(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(context.Context, *http.Request) (*page, error) {
		return &page{name: "contact", data: &render.PageData{
			Title:  "Contact",
			Crumbs: catalog.Breadcrumbs(nil, nil),
			Data:   map[string]any{"Captcha": p.captcha},
		}}, nil
	})
}
