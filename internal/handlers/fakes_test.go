// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// fakes_test.go provides in-memory implementations of the handler
// dependencies and a router that mirrors the production routes.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"catalogweb/internal/auth"
	"catalogweb/internal/middleware"
	"catalogweb/internal/models"
	"catalogweb/internal/pdf"
	"catalogweb/internal/render"
	"catalogweb/internal/store"
)

// memDB holds every record of the fake stores.
type memDB struct {
	mu          sync.Mutex
	categories  map[uuid.UUID]models.Category
	subs        map[uuid.UUID]models.SubCategory
	products    map[uuid.UUID]models.Product
	specs       map[uuid.UUID][]models.TechnicalSpec
	contacts    map[uuid.UUID]models.Contact
	enquiries   map[uuid.UUID]models.CatalogEnquiry
	enquiryErr  error
	listErr     error
	clockOffset time.Duration
}

func newMemDB() *memDB {
	return &memDB{
		categories: map[uuid.UUID]models.Category{},
		subs:       map[uuid.UUID]models.SubCategory{},
		products:   map[uuid.UUID]models.Product{},
		specs:      map[uuid.UUID][]models.TechnicalSpec{},
		contacts:   map[uuid.UUID]models.Contact{},
		enquiries:  map[uuid.UUID]models.CatalogEnquiry{},
	}
}

// now returns strictly increasing timestamps so "newest first" is stable.
func (db *memDB) now() time.Time {
	db.clockOffset += time.Second
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(db.clockOffset)
}

func (db *memDB) slugTaken(slug string, self uuid.UUID) bool {
	for id, c := range db.categories {
		if c.Slug == slug && id != self {
			return true
		}
	}
	return false
}

func matchStatus(f store.Filter, s models.Status) bool {
	return f.Status == "" || f.Status == s
}

func sameID(want *uuid.UUID, got uuid.UUID) bool {
	return want == nil || *want == got
}

func sameOptionalID(want *uuid.UUID, got *uuid.UUID) bool {
	return want == nil || (got != nil && *got == *want)
}

// --- categories ---

type memCategories struct{ db *memDB }

func (m memCategories) List(_ context.Context, f store.Filter) ([]models.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if m.db.listErr != nil {
		return nil, m.db.listErr
	}
	var out []models.Category
	for _, c := range m.db.categories {
		if matchStatus(f, c.Status) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m memCategories) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m memCategories) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, c := range m.db.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

func (m memCategories) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if m.db.slugTaken(c.Slug, uuid.Nil) {
		return nil, store.ErrSlugTaken
	}
	out := *c
	out.ID = uuid.New()
	out.CreatedAt = m.db.now()
	out.UpdatedAt = out.CreatedAt
	m.db.categories[out.ID] = out
	return &out, nil
}

func (m memCategories) Update(_ context.Context, c *models.Category) (*models.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	old, ok := m.db.categories[c.ID]
	if !ok {
		return nil, nil
	}
	if m.db.slugTaken(c.Slug, c.ID) {
		return nil, store.ErrSlugTaken
	}
	out := *c
	out.CreatedAt = old.CreatedAt
	out.UpdatedAt = m.db.now()
	m.db.categories[out.ID] = out
	return &out, nil
}

func (m memCategories) SetStatus(_ context.Context, id uuid.UUID, p store.Patch) (*models.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.categories[id]
	if !ok {
		return nil, nil
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.SortOrder != nil {
		c.SortOrder = *p.SortOrder
	}
	m.db.categories[id] = c
	return &c, nil
}

func (m memCategories) Delete(_ context.Context, id uuid.UUID) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, sc := range m.db.subs {
		if sc.CategoryID == id {
			return store.ErrHasDependents
		}
	}
	for _, p := range m.db.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			return store.ErrHasDependents
		}
	}
	delete(m.db.categories, id)
	return nil
}

// --- sub-categories ---

type memSubCategories struct{ db *memDB }

func (m memSubCategories) List(_ context.Context, f store.Filter) ([]models.SubCategory, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var out []models.SubCategory
	for _, sc := range m.db.subs {
		if matchStatus(f, sc.Status) && sameID(f.CategoryID, sc.CategoryID) {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memSubCategories) FindByID(_ context.Context, id uuid.UUID) (*models.SubCategory, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	sc, ok := m.db.subs[id]
	if !ok {
		return nil, nil
	}
	return &sc, nil
}

func (m memSubCategories) FindBySlug(_ context.Context, slug string) (*models.SubCategory, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, sc := range m.db.subs {
		if sc.Slug == slug {
			return &sc, nil
		}
	}
	return nil, nil
}

func (m memSubCategories) Create(_ context.Context, sc *models.SubCategory) (*models.SubCategory, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, other := range m.db.subs {
		if other.Slug == sc.Slug {
			return nil, store.ErrSlugTaken
		}
	}
	out := *sc
	out.ID = uuid.New()
	out.CreatedAt = m.db.now()
	m.db.subs[out.ID] = out
	return &out, nil
}

func (m memSubCategories) Update(_ context.Context, sc *models.SubCategory) (*models.SubCategory, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.subs[sc.ID]; !ok {
		return nil, nil
	}
	out := *sc
	m.db.subs[out.ID] = out
	return &out, nil
}

func (m memSubCategories) SetStatus(_ context.Context, id uuid.UUID, p store.Patch) (*models.SubCategory, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	sc, ok := m.db.subs[id]
	if !ok {
		return nil, nil
	}
	if p.Status != nil {
		sc.Status = *p.Status
	}
	if p.SortOrder != nil {
		sc.SortOrder = *p.SortOrder
	}
	m.db.subs[id] = sc
	return &sc, nil
}

func (m memSubCategories) Delete(_ context.Context, id uuid.UUID) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, p := range m.db.products {
		if p.SubCategoryID != nil && *p.SubCategoryID == id {
			return store.ErrHasDependents
		}
	}
	delete(m.db.subs, id)
	return nil
}

// --- products ---

type memProducts struct{ db *memDB }

func (m memProducts) List(_ context.Context, f store.Filter) ([]models.Product, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var out []models.Product
	for _, p := range m.db.products {
		if !matchStatus(f, p.Status) || !sameOptionalID(f.CategoryID, p.CategoryID) ||
			!sameOptionalID(f.SubCategoryID, p.SubCategoryID) {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	p, ok := m.db.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m memProducts) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, p := range m.db.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (m memProducts) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, other := range m.db.products {
		if other.Slug == p.Slug {
			return nil, store.ErrSlugTaken
		}
	}
	out := *p
	out.ID = uuid.New()
	out.Specs = nil
	out.CreatedAt = m.db.now()
	m.db.products[out.ID] = out
	return &out, nil
}

func (m memProducts) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.products[p.ID]; !ok {
		return nil, nil
	}
	out := *p
	out.Specs = nil
	m.db.products[out.ID] = out
	return &out, nil
}

func (m memProducts) SetStatus(_ context.Context, id uuid.UUID, patch store.Patch) (*models.Product, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	p, ok := m.db.products[id]
	if !ok {
		return nil, nil
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.SortOrder != nil {
		p.SortOrder = *patch.SortOrder
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	m.db.products[id] = p
	return &p, nil
}

func (m memProducts) Delete(_ context.Context, id uuid.UUID) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.products, id)
	delete(m.db.specs, id)
	return nil
}

func (m memProducts) Specs(_ context.Context, id uuid.UUID) ([]models.TechnicalSpec, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return append([]models.TechnicalSpec(nil), m.db.specs[id]...), nil
}

func (m memProducts) ReplaceSpecs(_ context.Context, id uuid.UUID, specs []models.TechnicalSpec) ([]models.TechnicalSpec, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := make([]models.TechnicalSpec, len(specs))
	for i, s := range specs {
		s.ID = uuid.New()
		s.ProductID = id
		s.SortOrder = i
		out[i] = s
	}
	m.db.specs[id] = out
	return out, nil
}

// --- leads ---

type memContacts struct{ db *memDB }

func (m memContacts) Create(_ context.Context, c *models.Contact) (*models.Contact, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := *c
	out.ID = uuid.New()
	out.CreatedAt = m.db.now()
	m.db.contacts[out.ID] = out
	return &out, nil
}

func (m memContacts) List(_ context.Context, status models.ContactStatus) ([]models.Contact, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var out []models.Contact
	for _, c := range m.db.contacts {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m memContacts) FindByID(_ context.Context, id uuid.UUID) (*models.Contact, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.contacts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m memContacts) UpdateStatus(_ context.Context, id uuid.UUID, status models.ContactStatus) (*models.Contact, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.contacts[id]
	if !ok {
		return nil, nil
	}
	c.Status = status
	m.db.contacts[id] = c
	return &c, nil
}

func (m memContacts) Delete(_ context.Context, id uuid.UUID) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.contacts, id)
	return nil
}

type memEnquiries struct{ db *memDB }

func (m memEnquiries) Create(_ context.Context, e *models.CatalogEnquiry) (*models.CatalogEnquiry, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if m.db.enquiryErr != nil {
		return nil, m.db.enquiryErr
	}
	out := *e
	out.ID = uuid.New()
	out.CreatedAt = m.db.now()
	m.db.enquiries[out.ID] = out
	return &out, nil
}

func (m memEnquiries) List(_ context.Context, status models.EnquiryStatus) ([]models.CatalogEnquiry, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var out []models.CatalogEnquiry
	for _, e := range m.db.enquiries {
		if status == "" || e.Status == status {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m memEnquiries) FindByID(_ context.Context, id uuid.UUID) (*models.CatalogEnquiry, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	e, ok := m.db.enquiries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m memEnquiries) UpdateStatus(_ context.Context, id uuid.UUID, status models.EnquiryStatus) (*models.CatalogEnquiry, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	e, ok := m.db.enquiries[id]
	if !ok {
		return nil, nil
	}
	e.Status = status
	m.db.enquiries[id] = e
	return &e, nil
}

func (m memEnquiries) Delete(_ context.Context, id uuid.UUID) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.enquiries, id)
	return nil
}

func (db *memDB) contactCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.contacts)
}

func (db *memDB) enquiryList() []models.CatalogEnquiry {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []models.CatalogEnquiry
	for _, e := range db.enquiries {
		out = append(out, e)
	}
	return out
}

// --- other dependencies ---

type fakePages struct {
	mu          sync.Mutex
	pages       map[string][]byte
	invalidated int
}

func newFakePages() *fakePages { return &fakePages{pages: map[string][]byte{}} }

func (f *fakePages) Get(_ context.Context, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.pages[key]
	return v, ok
}

func (f *fakePages) Set(_ context.Context, key string, html []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[key] = html
}

func (f *fakePages) InvalidateAll(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = map[string][]byte{}
	f.invalidated++
}

func (f *fakePages) invalidations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalidated
}

type fakeNotifier struct {
	mu        sync.Mutex
	contacts  []models.Contact
	enquiries []models.CatalogEnquiry
}

func (f *fakeNotifier) ContactReceived(_ context.Context, c *models.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, *c)
	return nil
}

func (f *fakeNotifier) EnquiryReceived(_ context.Context, e *models.CatalogEnquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enquiries = append(f.enquiries, *e)
	return nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

const fakeStorageURL = "https://cdn.example/"

func (f *fakeStorage) Upload(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) FileURL(key string) string { return fakeStorageURL + key }

func (f *fakeStorage) ExtractKey(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, fakeStorageURL) {
		return "", false
	}
	return strings.TrimPrefix(rawURL, fakeStorageURL), true
}

// coverPDF stands in for the cover document in generator fakes.
var coverPDF = []byte("%PDF-1.7 cover")

type fakeGenerator struct {
	mu       sync.Mutex
	err      error
	products []pdf.ProductSheet
	books    []pdf.CategoryBook
}

func (f *fakeGenerator) ProductCatalog(_ context.Context, sheet pdf.ProductSheet) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.products = append(f.products, sheet)
	return append(append([]byte{}, coverPDF...), []byte(" body:"+sheet.Product.Slug)...), nil
}

func (f *fakeGenerator) CategoryCatalog(_ context.Context, book pdf.CategoryBook) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.books = append(f.books, book)
	return append(append([]byte{}, coverPDF...), []byte(" body:"+book.Category.Slug)...), nil
}

const (
	testAdminEmail    = "admin@catalog.local"
	testAdminPassword = "s3cret"
	testToken         = "test-token"
)

type fakeAuth struct {
	totp      bool
	loggedOut []string
}

func (f *fakeAuth) Login(_ context.Context, email, password, code string) (string, time.Time, error) {
	if email != testAdminEmail || password != testAdminPassword {
		return "", time.Time{}, auth.ErrInvalidCredentials
	}
	if f.totp && code != "123456" {
		return "", time.Time{}, auth.ErrInvalidCredentials
	}
	return testToken, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), nil
}

func (f *fakeAuth) Logout(_ context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

func (f *fakeAuth) TOTPEnabled() bool { return f.totp }

func (f *fakeAuth) TOTPQRCode() ([]byte, error) {
	if !f.totp {
		return nil, auth.ErrTOTPDisabled
	}
	return []byte("\x89PNG fake"), nil
}

type fakeCookies struct{}

func (fakeCookies) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{Name: "catalog_admin", Value: token, HttpOnly: true})
}

func (fakeCookies) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "catalog_admin", Value: "", MaxAge: -1})
}

// --- test environment ---

const testCaptcha = "1234"

// env wires every handler group to shared fakes.
type env struct {
	db        *memDB
	pages     *fakePages
	notifier  *fakeNotifier
	storage   *fakeStorage
	generator *fakeGenerator
	auth      *fakeAuth
	router    http.Handler
}

func runNow(fn func()) { fn() }

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		db:        newMemDB(),
		pages:     newFakePages(),
		notifier:  &fakeNotifier{},
		storage:   newFakeStorage(),
		generator: &fakeGenerator{},
		auth:      &fakeAuth{},
	}

	cats := memCategories{e.db}
	subs := memSubCategories{e.db}
	prods := memProducts{e.db}

	catalogH := NewCatalog(cats, subs, prods, e.storage, e.pages)
	leads := NewLeads(memContacts{e.db}, memEnquiries{e.db}, e.notifier, testCaptcha)
	leads.async = runNow
	export := NewExport(cats, subs, prods, memEnquiries{e.db}, e.generator, e.notifier, 5*time.Second)
	export.async = runNow
	upload := NewUpload(e.storage)
	authH := NewAuth(e.auth, fakeCookies{})

	renderer, err := render.New("Test Catalog")
	require.NoError(t, err)
	public := NewPublic(renderer, cats, subs, prods, e.pages, testCaptcha)

	r := chi.NewRouter()
	r.Use(fakeIdentity)
	r.NotFound(public.NotFound)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)
		r.Post("/contacts", leads.CreateContact)
		r.Post("/generate-catalog", export.GenerateCatalog)

		r.Get("/categories", catalogH.ListCategories)
		r.Get("/categories/{id}", catalogH.GetCategory)
		r.Get("/sub-categories", catalogH.ListSubCategories)
		r.Get("/sub-categories/{id}", catalogH.GetSubCategory)
		r.Get("/products", catalogH.ListProducts)
		r.Get("/products/{id}", catalogH.GetProduct)
		r.Get("/products/{id}/specs", catalogH.ProductSpecs)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/session", authH.Session)
			r.Get("/admin/totp", authH.TOTPQRCode)
			r.Post("/upload", upload.Create)

			r.Post("/categories", catalogH.CreateCategory)
			r.Put("/categories/{id}", catalogH.UpdateCategory)
			r.Patch("/categories/{id}", catalogH.PatchCategory)
			r.Delete("/categories/{id}", catalogH.DeleteCategory)
			r.Post("/sub-categories", catalogH.CreateSubCategory)
			r.Put("/sub-categories/{id}", catalogH.UpdateSubCategory)
			r.Patch("/sub-categories/{id}", catalogH.PatchSubCategory)
			r.Delete("/sub-categories/{id}", catalogH.DeleteSubCategory)
			r.Post("/products", catalogH.CreateProduct)
			r.Put("/products/{id}", catalogH.UpdateProduct)
			r.Patch("/products/{id}", catalogH.PatchProduct)
			r.Delete("/products/{id}", catalogH.DeleteProduct)
			r.Put("/products/{id}/specs", catalogH.ReplaceProductSpecs)

			r.Get("/contacts", leads.ListContacts)
			r.Get("/contacts/{id}", leads.GetContact)
			r.Patch("/contacts/{id}", leads.UpdateContactStatus)
			r.Delete("/contacts/{id}", leads.DeleteContact)
			r.Get("/enquiries", leads.ListEnquiries)
			r.Get("/enquiries/{id}", leads.GetEnquiry)
			r.Patch("/enquiries/{id}", leads.UpdateEnquiryStatus)
			r.Delete("/enquiries/{id}", leads.DeleteEnquiry)
		})
	})

	r.Get("/", public.Home)
	r.Get("/contact", public.Contact)
	r.Get("/categories/{slug}", public.Category)
	r.Get("/categories/{slug}/{subSlug}", public.SubCategory)
	r.Get("/products/{slug}", public.Product)

	e.router = r
	return e
}

// adminHeader marks a test request as coming from a logged-in admin.
const adminHeader = "X-Test-Admin"

func fakeIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(adminHeader) != "" {
			id := &auth.Identity{Email: testAdminEmail}
			r = r.WithContext(context.WithValue(r.Context(), middleware.IdentityKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// do sends a JSON request through the router.
func (e *env) do(method, target string, body any, admin bool) *httptest.ResponseRecorder {
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set(adminHeader, "1")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body.
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

// seed helpers create records directly in the fake stores.

func (e *env) seedCategory(t *testing.T, name string, status models.Status) models.Category {
	t.Helper()
	c, err := memCategories{e.db}.Create(context.Background(), &models.Category{
		Name: name, Slug: strings.ToLower(strings.ReplaceAll(name, " ", "-")), Status: status,
	})
	require.NoError(t, err)
	return *c
}

func (e *env) seedSubCategory(t *testing.T, cat models.Category, name string, status models.Status) models.SubCategory {
	t.Helper()
	sc, err := memSubCategories{e.db}.Create(context.Background(), &models.SubCategory{
		CategoryID: cat.ID, Name: name, Slug: strings.ToLower(strings.ReplaceAll(name, " ", "-")), Status: status,
	})
	require.NoError(t, err)
	return *sc
}

func (e *env) seedProduct(t *testing.T, name string, catID, subID *uuid.UUID, status models.Status) models.Product {
	t.Helper()
	p, err := memProducts{e.db}.Create(context.Background(), &models.Product{
		Name: name, Slug: strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		CategoryID: catID, SubCategoryID: subID, Status: status,
	})
	require.NoError(t, err)
	return *p
}

var errBoom = errors.New("boom")
