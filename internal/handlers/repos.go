// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"catalogweb/internal/models"
	"catalogweb/internal/pdf"
	"catalogweb/internal/store"
)

// The interfaces below are the narrow views handlers take of their
// dependencies. The concrete types in store, cache, storage, notify, pdf
// and auth satisfy them; tests substitute in-memory fakes.

// CategoryRepo persists categories. *store.CategoryStore satisfies it.
type CategoryRepo interface {
	List(ctx context.Context, f store.Filter) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) (*models.Category, error)
	SetStatus(ctx context.Context, id uuid.UUID, p store.Patch) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubCategoryRepo persists sub-categories. *store.SubCategoryStore
// satisfies it.
type SubCategoryRepo interface {
	List(ctx context.Context, f store.Filter) ([]models.SubCategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.SubCategory, error)
	FindBySlug(ctx context.Context, slug string) (*models.SubCategory, error)
	Create(ctx context.Context, c *models.SubCategory) (*models.SubCategory, error)
	Update(ctx context.Context, c *models.SubCategory) (*models.SubCategory, error)
	SetStatus(ctx context.Context, id uuid.UUID, p store.Patch) (*models.SubCategory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepo persists products and their technical specs.
// *store.ProductStore satisfies it.
type ProductRepo interface {
	List(ctx context.Context, f store.Filter) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	SetStatus(ctx context.Context, id uuid.UUID, p store.Patch) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Specs(ctx context.Context, productID uuid.UUID) ([]models.TechnicalSpec, error)
	ReplaceSpecs(ctx context.Context, productID uuid.UUID, specs []models.TechnicalSpec) ([]models.TechnicalSpec, error)
}

// ContactRepo persists contact messages. *store.ContactStore satisfies it.
type ContactRepo interface {
	Create(ctx context.Context, c *models.Contact) (*models.Contact, error)
	List(ctx context.Context, status models.ContactStatus) ([]models.Contact, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ContactStatus) (*models.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EnquiryRepo persists catalog download leads. *store.EnquiryStore
// satisfies it.
type EnquiryRepo interface {
	Create(ctx context.Context, e *models.CatalogEnquiry) (*models.CatalogEnquiry, error)
	List(ctx context.Context, status models.EnquiryStatus) ([]models.CatalogEnquiry, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CatalogEnquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.EnquiryStatus) (*models.CatalogEnquiry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PageCache stores rendered storefront pages. *cache.PageCache satisfies
// it.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
	InvalidateAll(ctx context.Context)
}

// Notifier delivers lead notifications. *notify.Mailer satisfies it.
type Notifier interface {
	ContactReceived(ctx context.Context, c *models.Contact) error
	EnquiryReceived(ctx context.Context, e *models.CatalogEnquiry) error
}

// ObjectStorage stores uploaded files. *storage.Client satisfies it.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
	ExtractKey(rawURL string) (string, bool)
}

// CatalogGenerator renders PDF catalogs. *pdf.Generator satisfies it.
type CatalogGenerator interface {
	ProductCatalog(ctx context.Context, sheet pdf.ProductSheet) ([]byte, error)
	CategoryCatalog(ctx context.Context, book pdf.CategoryBook) ([]byte, error)
}

// Authenticator checks admin credentials and manages tokens.
// *auth.Manager satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password, code string) (string, time.Time, error)
	Logout(ctx context.Context, token string) error
	TOTPEnabled() bool
	TOTPQRCode() ([]byte, error)
}

// CookieJar writes the admin session cookie. *session.Store satisfies it.
type CookieJar interface {
	SetCookie(w http.ResponseWriter, token string)
	ClearCookie(w http.ResponseWriter)
}
