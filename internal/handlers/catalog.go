// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"catalogweb/internal/models"
	"catalogweb/internal/store"
)

// Catalog groups the JSON handlers for categories, sub-categories,
// products and technical specs. Reads are public and limited to active
// records unless the caller is an admin; writes require an admin and
// invalidate the storefront page cache.
type Catalog struct {
	categories    CategoryRepo
	subCategories SubCategoryRepo
	products      ProductRepo
	storage       ObjectStorage
	pages         PageCache
}

// NewCatalog creates the catalog handler group. storage may be nil when
// object storage is not configured.
func NewCatalog(categories CategoryRepo, subCategories SubCategoryRepo, products ProductRepo, storage ObjectStorage, pages PageCache) *Catalog {
	return &Catalog{
		categories:    categories,
		subCategories: subCategories,
		products:      products,
		storage:       storage,
		pages:         pages,
	}
}

// --- request bodies ---

type categoryInput struct {
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	Status      models.Status `json:"status"`
	SortOrder   int           `json:"sort_order"`
}

type subCategoryInput struct {
	CategoryID  uuid.UUID     `json:"category_id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	Status      models.Status `json:"status"`
	SortOrder   int           `json:"sort_order"`
}

type productInput struct {
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	CategoryID    *uuid.UUID    `json:"category_id"`
	SubCategoryID *uuid.UUID    `json:"sub_category_id"`
	Description   string        `json:"description"`
	ImageURL      string        `json:"image_url"`
	Status        models.Status `json:"status"`
	Featured      bool          `json:"featured"`
	SortOrder     int           `json:"sort_order"`
	Specs         []specInput   `json:"specs,omitempty"`
}

type specInput struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

type specsInput struct {
	Specs []specInput `json:"specs"`
}

type patchInput struct {
	Status    *models.Status `json:"status"`
	SortOrder *int           `json:"sort_order"`
	Featured  *bool          `json:"featured"`
}

// resolveStatus defaults an empty status to active.
func resolveStatus(s models.Status) (models.Status, string) {
	if s == "" {
		return models.StatusActive, ""
	}
	if !s.Valid() {
		return "", "status must be active or inactive"
	}
	return s, ""
}

func (in categoryInput) category() (*models.Category, string) {
	if msg := validateCatalogFields(in.Name, in.Description, in.ImageURL); msg != "" {
		return nil, msg
	}
	s, msg := resolveSlug(in.Name, in.Slug)
	if msg != "" {
		return nil, msg
	}
	status, msg := resolveStatus(in.Status)
	if msg != "" {
		return nil, msg
	}
	return &models.Category{
		Name:        strings.TrimSpace(in.Name),
		Slug:        s,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Status:      status,
		SortOrder:   in.SortOrder,
	}, ""
}

func (in subCategoryInput) subCategory() (*models.SubCategory, string) {
	if in.CategoryID == uuid.Nil {
		return nil, "category_id is required"
	}
	if msg := validateCatalogFields(in.Name, in.Description, in.ImageURL); msg != "" {
		return nil, msg
	}
	s, msg := resolveSlug(in.Name, in.Slug)
	if msg != "" {
		return nil, msg
	}
	status, msg := resolveStatus(in.Status)
	if msg != "" {
		return nil, msg
	}
	return &models.SubCategory{
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Slug:        s,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Status:      status,
		SortOrder:   in.SortOrder,
	}, ""
}

func (in productInput) product() (*models.Product, string) {
	if msg := validateCatalogFields(in.Name, in.Description, in.ImageURL); msg != "" {
		return nil, msg
	}
	s, msg := resolveSlug(in.Name, in.Slug)
	if msg != "" {
		return nil, msg
	}
	status, msg := resolveStatus(in.Status)
	if msg != "" {
		return nil, msg
	}
	return &models.Product{
		Name:          strings.TrimSpace(in.Name),
		Slug:          s,
		CategoryID:    in.CategoryID,
		SubCategoryID: in.SubCategoryID,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
		Status:        status,
		Featured:      in.Featured,
		SortOrder:     in.SortOrder,
	}, ""
}

// normalizeSpecs trims keys and values, drops empty values and rejects
// missing or duplicate keys.
func normalizeSpecs(in []specInput) ([]models.TechnicalSpec, string) {
	if len(in) > maxSpecs {
		return nil, "too many specs (max 100)"
	}
	seen := make(map[string]bool, len(in))
	specs := make([]models.TechnicalSpec, 0, len(in))
	for _, s := range in {
		key := strings.TrimSpace(s.Key)
		if key == "" {
			return nil, "spec key is required"
		}
		if utf8.RuneCountInString(key) > maxSpecKeyLen {
			return nil, "spec key is too long (max 200 characters)"
		}
		folded := strings.ToLower(key)
		if seen[folded] {
			return nil, "duplicate spec key: " + key
		}
		seen[folded] = true

		values := make([]string, 0, len(s.Values))
		for _, v := range s.Values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if utf8.RuneCountInString(v) > maxSpecValueLen {
				return nil, "spec value is too long (max 500 characters)"
			}
			values = append(values, v)
		}
		specs = append(specs, models.TechnicalSpec{Key: key, Values: values})
	}
	return specs, ""
}

func (in patchInput) patch(allowFeatured bool) (store.Patch, string) {
	if in.Status == nil && in.SortOrder == nil && in.Featured == nil {
		return store.Patch{}, "nothing to update"
	}
	if in.Status != nil && !in.Status.Valid() {
		return store.Patch{}, "status must be active or inactive"
	}
	if in.Featured != nil && !allowFeatured {
		return store.Patch{}, "featured only applies to products"
	}
	return store.Patch{Status: in.Status, SortOrder: in.SortOrder, Featured: in.Featured}, ""
}

// --- shared helpers ---

// listFilter builds a store filter from query parameters. Non-admin
// callers only ever see active records.
func listFilter(r *http.Request) (store.Filter, string) {
	var f store.Filter
	q := r.URL.Query()

	if isAdmin(r) {
		if s := models.Status(q.Get("status")); s != "" {
			if !s.Valid() {
				return f, "status must be active or inactive"
			}
			f.Status = s
		}
	} else {
		f.Status = models.StatusActive
	}

	var err error
	if f.CategoryID, err = parseOptionalID(r, "category_id"); err != nil {
		return f, err.Error()
	}
	if f.SubCategoryID, err = parseOptionalID(r, "sub_category_id"); err != nil {
		return f, err.Error()
	}
	if raw := q.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return f, "featured must be true or false"
		}
		f.Featured = &featured
	}
	return f, ""
}

// visible reports whether a record with the given status may be shown to
// the caller.
func visible(r *http.Request, status models.Status) bool {
	return status == models.StatusActive || isAdmin(r)
}

// refParam returns the {id} URL parameter as a UUID, or as a slug when it
// does not parse as one.
func refParam(r *http.Request) (uuid.UUID, string) {
	raw := chi.URLParam(r, "id")
	if id, err := uuid.Parse(raw); err == nil {
		return id, ""
	}
	return uuid.Nil, raw
}

func (h *Catalog) invalidate(ctx context.Context) {
	if h.pages != nil {
		h.pages.InvalidateAll(ctx)
	}
}

// discardImage deletes an uploaded image that is no longer referenced.
// Failures are logged only.
func (h *Catalog) discardImage(ctx context.Context, oldURL, newURL string) {
	if h.storage == nil || oldURL == "" || oldURL == newURL {
		return
	}
	key, ok := h.storage.ExtractKey(oldURL)
	if !ok {
		return
	}
	if err := h.storage.Delete(ctx, key); err != nil {
		slog.Warn("delete replaced image failed", "error", err, "key", key)
	}
}

// --- categories ---

// ListCategories returns categories ordered for display.
func (h *Catalog) ListCategories(w http.ResponseWriter, r *http.Request) {
	f, msg := listFilter(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	items, err := h.categories.List(r.Context(), f)
	if err != nil {
		internalError(w, "list categories failed", err)
		return
	}
	writeJSON(w, http.StatusOK, list(items))
}

func (h *Catalog) findCategory(ctx context.Context, id uuid.UUID, slug string) (*models.Category, error) {
	if slug != "" {
		return h.categories.FindBySlug(ctx, slug)
	}
	return h.categories.FindByID(ctx, id)
}

// GetCategory returns one category by id or slug.
func (h *Catalog) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, slug := refParam(r)
	c, err := h.findCategory(r.Context(), id, slug)
	if err != nil {
		internalError(w, "find category failed", err)
		return
	}
	if c == nil || !visible(r, c.Status) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCategory stores a new category.
func (h *Catalog) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, msg := in.category()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.categories.Create(r.Context(), c)
	if err != nil {
		storeError(w, "create category failed", err)
		return
	}
	h.invalidate(r.Context())
	slog.Info("category created", "id", created.ID, "slug", created.Slug)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateCategory replaces every editable field of a category.
func (h *Catalog) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in categoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, msg := in.category()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	existing, err := h.categories.FindByID(ctx, id)
	if err != nil {
		internalError(w, "find category failed", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	c.ID = id
	updated, err := h.categories.Update(ctx, c)
	if err != nil {
		storeError(w, "update category failed", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	h.discardImage(ctx, existing.ImageURL, updated.ImageURL)
	h.invalidate(ctx)
	writeJSON(w, http.StatusOK, updated)
}

// PatchCategory changes status or sort order.
func (h *Catalog) PatchCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in patchInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, msg := in.patch(false)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.categories.SetStatus(r.Context(), id, p)
	if err != nil {
		storeError(w, "patch category failed", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	h.invalidate(r.Context())
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCategory removes a category without dependents.
func (h *Catalog) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	existing, err := h.categories.FindByID(ctx, id)
	if err != nil {
		internalError(w, "find category failed", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	if err := h.categories.Delete(ctx, id); err != nil {
		storeError(w, "delete category failed", err)
		return
	}
	h.discardImage(ctx, existing.ImageURL, "")
	h.invalidate(ctx)
	slog.Info("category deleted", "id", id, "slug", existing.Slug)
	w.WriteHeader(http.StatusNoContent)
}

// --- sub-categories ---

// ListSubCategories returns sub-categories, optionally of one category.
func (h *Catalog) ListSubCategories(w http.ResponseWriter, r *http.Request) {
	f, msg := listFilter(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	items, err := h.subCategories.List(r.Context(), f)
	if err != nil {
		internalError(w, "list sub-categories failed", err)
		return
	}
	writeJSON(w, http.StatusOK, list(items))
}

// GetSubCategory returns one sub-category by id or slug.
func (h *Catalog) GetSubCategory(w http.ResponseWriter, r *http.Request) {
	id, slug := refParam(r)
	var (
		sc  *models.SubCategory
		err error
	)
	if slug != "" {
		sc, err = h.subCategories.FindBySlug(r.Context(), slug)
	} else {
		sc, err = h.subCategories.FindByID(r.Context(), id)
	}
	if err != nil {
		internalError(w, "find sub-category failed", err)
		return
	}
	if sc == nil || !visible(r, sc.Status) {
		writeError(w, http.StatusNotFound, "sub-category not found")
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// checkCategory answers 400 when the referenced category does not exist.
func (h *Catalog) checkCategory(w http.ResponseWriter, ctx context.Context, id uuid.UUID) bool {
	c, err := h.categories.FindByID(ctx, id)
	if err != nil {
		internalError(w, "find category failed", err)
		return false
	}
	if c == nil {
		writeError(w, http.StatusBadRequest, "category_id: unknown category")
		return false
	}
	return true
}

// CreateSubCategory stores a new sub-category under an existing category.
func (h *Catalog) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	var in subCategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sc, msg := in.subCategory()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	ctx := r.Context()
	if !h.checkCategory(w, ctx, sc.CategoryID) {
		return
	}

	created, err := h.subCategories.Create(ctx, sc)
	if err != nil {
		storeError(w, "create sub-category failed", err)
		return
	}
	h.invalidate(ctx)
	slog.Info("sub-category created", "id", created.ID, "slug", created.Slug)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateSubCategory replaces every editable field of a sub-category.
// Moving it to another category also moves the category reference of
// its products.
func (h *Catalog) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in subCategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sc, msg := in.subCategory()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	existing, err := h.subCategories.FindByID(ctx, id)
	if err != nil {
		internalError(w, "find sub-category failed", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "sub-category not found")
		return
	}
	if sc.CategoryID != existing.CategoryID && !h.checkCategory(w, ctx, sc.CategoryID) {
		return
	}

	sc.ID = id
	updated, err := h.subCategories.Update(ctx, sc)
	if err != nil {
		storeError(w, "update sub-category failed", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "sub-category not found")
		return
	}
	h.discardImage(ctx, existing.ImageURL, updated.ImageURL)
	h.invalidate(ctx)
	writeJSON(w, http.StatusOK, updated)
}

// PatchSubCategory changes status or sort order.
func (h *Catalog) PatchSubCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in patchInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, msg := in.patch(false)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.subCategories.SetStatus(r.Context(), id, p)
	if err != nil {
		storeError(w, "patch sub-category failed", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "sub-category not found")
		return
	}
	h.invalidate(r.Context())
	writeJSON(w, http.StatusOK, updated)
}

// DeleteSubCategory removes a sub-category without products.
func (h *Catalog) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	existing, err := h.subCategories.FindByID(ctx, id)
	if err != nil {
		internalError(w, "find sub-category failed", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "sub-category not found")
		return
	}

	if err := h.subCategories.Delete(ctx, id); err != nil {
		storeError(w, "delete sub-category failed", err)
		return
	}
	h.discardImage(ctx, existing.ImageURL, "")
	h.invalidate(ctx)
	slog.Info("sub-category deleted", "id", id, "slug", existing.Slug)
	w.WriteHeader(http.StatusNoContent)
}

// --- products ---

// ListProducts returns products filtered by category, sub-category and
// featured flag.
func (h *Catalog) ListProducts(w http.ResponseWriter, r *http.Request) {
	f, msg := listFilter(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	items, err := h.products.List(r.Context(), f)
	if err != nil {
		internalError(w, "list products failed", err)
		return
	}
	writeJSON(w, http.StatusOK, list(items))
}

// GetProduct returns one product by id or slug, including its specs.
func (h *Catalog) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, slug := refParam(r)
	var (
		p   *models.Product
		err error
	)
	if slug != "" {
		p, err = h.products.FindBySlug(ctx, slug)
	} else {
		p, err = h.products.FindByID(ctx, id)
	}
	if err != nil {
		internalError(w, "find product failed", err)
		return
	}
	if p == nil || !visible(r, p.Status) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	if p.Specs, err = h.products.Specs(ctx, p.ID); err != nil {
		internalError(w, "list product specs failed", err, "product_id", p.ID)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// resolveParents checks the product's category and sub-category
// references. A product given only a sub-category inherits its category;
// a product given both must name a sub-category of that category.
func (h *Catalog) resolveParents(ctx context.Context, p *models.Product) (string, error) {
	switch {
	case p.SubCategoryID != nil:
		sc, err := h.subCategories.FindByID(ctx, *p.SubCategoryID)
		if err != nil {
			return "", err
		}
		if sc == nil {
			return "sub_category_id: unknown sub-category", nil
		}
		if p.CategoryID == nil {
			catID := sc.CategoryID
			p.CategoryID = &catID
		} else if *p.CategoryID != sc.CategoryID {
			return "sub-category does not belong to the given category", nil
		}
		return "", nil

	case p.CategoryID != nil:
		c, err := h.categories.FindByID(ctx, *p.CategoryID)
		if err != nil {
			return "", err
		}
		if c == nil {
			return "category_id: unknown category", nil
		}
		return "", nil

	default:
		return "category_id or sub_category_id is required", nil
	}
}

// CreateProduct stores a new product with optional specs.
func (h *Catalog) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, msg := in.product()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	specs, msg := normalizeSpecs(in.Specs)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	msg, err := h.resolveParents(ctx, p)
	if err != nil {
		internalError(w, "resolve product parents failed", err)
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.products.Create(ctx, p)
	if err != nil {
		storeError(w, "create product failed", err)
		return
	}
	if len(specs) > 0 {
		if created.Specs, err = h.products.ReplaceSpecs(ctx, created.ID, specs); err != nil {
			storeError(w, "save product specs failed", err)
			return
		}
	}
	h.invalidate(ctx)
	slog.Info("product created", "id", created.ID, "slug", created.Slug)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateProduct replaces every editable field of a product. Specs are
// replaced only when the body carries them.
func (h *Catalog) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, msg := in.product()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	specs, msg := normalizeSpecs(in.Specs)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	existing, err := h.products.FindByID(ctx, id)
	if err != nil {
		internalError(w, "find product failed", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	msg, err = h.resolveParents(ctx, p)
	if err != nil {
		internalError(w, "resolve product parents failed", err)
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p.ID = id
	updated, err := h.products.Update(ctx, p)
	if err != nil {
		storeError(w, "update product failed", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if in.Specs != nil {
		if updated.Specs, err = h.products.ReplaceSpecs(ctx, id, specs); err != nil {
			storeError(w, "save product specs failed", err)
			return
		}
	}
	h.discardImage(ctx, existing.ImageURL, updated.ImageURL)
	h.invalidate(ctx)
	writeJSON(w, http.StatusOK, updated)
}

// PatchProduct changes status, featured flag or sort order.
func (h *Catalog) PatchProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in patchInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, msg := in.patch(true)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.products.SetStatus(r.Context(), id, p)
	if err != nil {
		storeError(w, "patch product failed", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	h.invalidate(r.Context())
	writeJSON(w, http.StatusOK, updated)
}

// DeleteProduct removes a product and its specs.
func (h *Catalog) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	existing, err := h.products.FindByID(ctx, id)
	if err != nil {
		internalError(w, "find product failed", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.products.Delete(ctx, id); err != nil {
		storeError(w, "delete product failed", err)
		return
	}
	h.discardImage(ctx, existing.ImageURL, "")
	h.invalidate(ctx)
	slog.Info("product deleted", "id", id, "slug", existing.Slug)
	w.WriteHeader(http.StatusNoContent)
}

// ProductSpecs returns the technical specs of a product.
func (h *Catalog) ProductSpecs(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	p, err := h.products.FindByID(ctx, id)
	if err != nil {
		internalError(w, "find product failed", err)
		return
	}
	if p == nil || !visible(r, p.Status) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	specs, err := h.products.Specs(ctx, id)
	if err != nil {
		internalError(w, "list product specs failed", err, "product_id", id)
		return
	}
	writeJSON(w, http.StatusOK, list(specs))
}

// ReplaceProductSpecs replaces the whole spec list of a product.
func (h *Catalog) ReplaceProductSpecs(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in specsInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	specs, msg := normalizeSpecs(in.Specs)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	p, err := h.products.FindByID(ctx, id)
	if err != nil {
		internalError(w, "find product failed", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	saved, err := h.products.ReplaceSpecs(ctx, id, specs)
	if err != nil {
		storeError(w, "replace product specs failed", err)
		return
	}
	h.invalidate(ctx)
	writeJSON(w, http.StatusOK, list(saved))
}
