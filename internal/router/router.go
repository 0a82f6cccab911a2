// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// catalog site. It organizes routes into the JSON API, split into public
// and admin groups, and the server-rendered storefront.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalogweb/internal/handlers"
	"catalogweb/internal/middleware"
)

// Config carries everything the router mounts.
type Config struct {
	Verifier      middleware.TokenVerifier
	SecureCookies bool
	Static        fs.FS

	Catalog *handlers.Catalog
	Leads   *handlers.Leads
	Export  *handlers.Export
	Upload  *handlers.Upload
	Auth    *handlers.Auth
	Public  *handlers.Public

	// Limiters for the public form endpoints. A nil limiter disables
	// rate limiting for that group.
	LoginLimiter *middleware.RateLimiter
	LeadLimiter  *middleware.RateLimiter
}

// limit returns rl's middleware, or a pass-through when rl is nil.
func limit(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(cfg Config) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. LoadIdentity runs
	// before CSRF so Bearer requests are recognised as exempt.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadIdentity(cfg.Verifier))
	r.Use(middleware.NewCSRF(cfg.SecureCookies))

	r.Get("/health", healthHandler)

	if cfg.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(cfg.Static)))
	}

	r.Route("/api", func(r chi.Router) {
		// Catalog reads are public; admins also see inactive records.
		r.Get("/categories", cfg.Catalog.ListCategories)
		r.Get("/categories/{id}", cfg.Catalog.GetCategory)
		r.Get("/sub-categories", cfg.Catalog.ListSubCategories)
		r.Get("/sub-categories/{id}", cfg.Catalog.GetSubCategory)
		r.Get("/products", cfg.Catalog.ListProducts)
		r.Get("/products/{id}", cfg.Catalog.GetProduct)
		r.Get("/products/{id}/specs", cfg.Catalog.ProductSpecs)

		r.With(limit(cfg.LoginLimiter)).Post("/login", cfg.Auth.Login)
		r.Post("/logout", cfg.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(limit(cfg.LeadLimiter))
			r.Post("/contacts", cfg.Leads.CreateContact)
			r.Post("/generate-catalog", cfg.Export.GenerateCatalog)
		})

		// Admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/session", cfg.Auth.Session)
			r.Get("/admin/totp", cfg.Auth.TOTPQRCode)
			r.Post("/upload", cfg.Upload.Create)

			r.Post("/categories", cfg.Catalog.CreateCategory)
			r.Put("/categories/{id}", cfg.Catalog.UpdateCategory)
			r.Patch("/categories/{id}", cfg.Catalog.PatchCategory)
			r.Delete("/categories/{id}", cfg.Catalog.DeleteCategory)

			r.Post("/sub-categories", cfg.Catalog.CreateSubCategory)
			r.Put("/sub-categories/{id}", cfg.Catalog.UpdateSubCategory)
			r.Patch("/sub-categories/{id}", cfg.Catalog.PatchSubCategory)
			r.Delete("/sub-categories/{id}", cfg.Catalog.DeleteSubCategory)

			r.Post("/products", cfg.Catalog.CreateProduct)
			r.Put("/products/{id}", cfg.Catalog.UpdateProduct)
			r.Patch("/products/{id}", cfg.Catalog.PatchProduct)
			r.Delete("/products/{id}", cfg.Catalog.DeleteProduct)
			r.Put("/products/{id}/specs", cfg.Catalog.ReplaceProductSpecs)

			r.Get("/contacts", cfg.Leads.ListContacts)
			r.Get("/contacts/{id}", cfg.Leads.GetContact)
			r.Patch("/contacts/{id}", cfg.Leads.UpdateContactStatus)
			r.Delete("/contacts/{id}", cfg.Leads.DeleteContact)

			r.Get("/enquiries", cfg.Leads.ListEnquiries)
			r.Get("/enquiries/{id}", cfg.Leads.GetEnquiry)
			r.Patch("/enquiries/{id}", cfg.Leads.UpdateEnquiryStatus)
			r.Delete("/enquiries/{id}", cfg.Leads.DeleteEnquiry)
		})

		r.NotFound(apiNotFound)
	})

	// Storefront, rendered server-side and cached.
	r.Get("/", cfg.Public.Home)
	r.Get("/contact", cfg.Public.Contact)
	r.Get("/categories/{slug}", cfg.Public.Category)
	r.Get("/categories/{slug}/{subSlug}", cfg.Public.SubCategory)
	r.Get("/products/{slug}", cfg.Public.Product)
	r.NotFound(cfg.Public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// apiNotFound answers unknown API paths with a JSON error instead of the
// storefront 404 page.
func apiNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"not found"}`))
}
