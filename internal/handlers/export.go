// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"catalogweb/internal/models"
	"catalogweb/internal/pdf"
	"catalogweb/internal/store"
)

// Export serves downloadable PDF catalogs and records who asked for them.
type Export struct {
	categories    CategoryRepo
	subCategories SubCategoryRepo
	products      ProductRepo
	enquiries     EnquiryRepo
	generator     CatalogGenerator
	notifier      Notifier
	timeout       time.Duration
	async         background
}

// NewExport creates the catalog export handler. notifier may be nil.
func NewExport(categories CategoryRepo, subCategories SubCategoryRepo, products ProductRepo, enquiries EnquiryRepo, generator CatalogGenerator, notifier Notifier, timeout time.Duration) *Export {
	return &Export{
		categories:    categories,
		subCategories: subCategories,
		products:      products,
		enquiries:     enquiries,
		generator:     generator,
		notifier:      notifier,
		timeout:       timeout,
		async:         goBackground,
	}
}

type exportInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Product  string `json:"product"`
	Category string `json:"category"`
}

// document is a rendered catalog ready to send.
type document struct {
	filename string
	label    string
	pdf      []byte
}

// GenerateCatalog renders the catalog of a product or a category, returns
// it as an attachment and stores the requester as a lead. A failure to
// store the lead does not fail the download.
func (h *Export) GenerateCatalog(w http.ResponseWriter, r *http.Request) {
	var in exportInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Product = strings.TrimSpace(in.Product)
	in.Category = strings.TrimSpace(in.Category)
	if msg := validateLead(in.Name, in.Email, in.Phone); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if (in.Product == "") == (in.Category == "") {
		writeError(w, http.StatusBadRequest, "exactly one of product or category is required")
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	lead := &models.CatalogEnquiry{
		Name:   strings.TrimSpace(in.Name),
		Email:  in.Email,
		Phone:  strings.TrimSpace(in.Phone),
		Status: models.EnquiryStatusNew,
	}

	var (
		doc   *document
		found bool
		err   error
	)
	if in.Product != "" {
		doc, found, err = h.productDocument(ctx, in.Product, lead)
	} else {
		doc, found, err = h.categoryDocument(ctx, in.Category, lead)
	}
	if err != nil {
		internalError(w, "generate catalog failed", err, "product", in.Product, "category", in.Category)
		if ctx.Err() != nil {
			slog.Warn("catalog generation timed out", "timeout", h.timeout)
		}
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "catalog not found")
		return
	}

	lead.Document = doc.label
	h.recordLead(r.Context(), lead)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.pdf)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(doc.pdf)
}

// recordLead stores the enquiry and notifies the site owner. Errors are
// logged and swallowed.
func (h *Export) recordLead(ctx context.Context, lead *models.CatalogEnquiry) {
	created, err := h.enquiries.Create(ctx, lead)
	if err != nil {
		slog.Error("save catalog enquiry failed", "error", err, "email", lead.Email, "document", lead.Document)
		return
	}
	slog.Info("catalog enquiry recorded", "id", created.ID, "document", created.Document)

	if h.notifier == nil {
		return
	}
	bg := context.WithoutCancel(ctx)
	h.async(func() {
		ctx, cancel := context.WithTimeout(bg, notifyTimeout)
		defer cancel()
		if err := h.notifier.EnquiryReceived(ctx, created); err != nil {
			slog.Warn("enquiry notification failed", "error", err, "id", created.ID)
		}
	})
}

// findProduct resolves a product reference given as UUID or slug.
func (h *Export) findProduct(ctx context.Context, ref string) (*models.Product, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return h.products.FindByID(ctx, id)
	}
	return h.products.FindBySlug(ctx, ref)
}

// findCategory resolves a category reference given as UUID or slug.
func (h *Export) findCategory(ctx context.Context, ref string) (*models.Category, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return h.categories.FindByID(ctx, id)
	}
	return h.categories.FindBySlug(ctx, ref)
}

// productSheet loads the specs and parents of a product.
func (h *Export) productSheet(ctx context.Context, p *models.Product) (pdf.ProductSheet, error) {
	sheet := pdf.ProductSheet{Product: *p}

	specs, err := h.products.Specs(ctx, p.ID)
	if err != nil {
		return sheet, err
	}
	sheet.Specs = specs

	if p.CategoryID != nil {
		if sheet.Category, err = h.categories.FindByID(ctx, *p.CategoryID); err != nil {
			return sheet, err
		}
	}
	if p.SubCategoryID != nil {
		if sheet.SubCategory, err = h.subCategories.FindByID(ctx, *p.SubCategoryID); err != nil {
			return sheet, err
		}
	}
	return sheet, nil
}

func (h *Export) productDocument(ctx context.Context, ref string, lead *models.CatalogEnquiry) (*document, bool, error) {
	p, err := h.findProduct(ctx, ref)
	if err != nil {
		return nil, false, fmt.Errorf("find product: %w", err)
	}
	if p == nil || !p.IsActive() {
		return nil, false, nil
	}

	sheet, err := h.productSheet(ctx, p)
	if err != nil {
		return nil, false, fmt.Errorf("load product %s: %w", p.Slug, err)
	}

	out, err := h.generator.ProductCatalog(ctx, sheet)
	if err != nil {
		return nil, false, fmt.Errorf("render product %s: %w", p.Slug, err)
	}

	lead.ProductID = &p.ID
	return &document{
		filename: p.Slug + "-catalog.pdf",
		label:    "Product: " + p.Name,
		pdf:      out,
	}, true, nil
}

func (h *Export) categoryDocument(ctx context.Context, ref string, lead *models.CatalogEnquiry) (*document, bool, error) {
	c, err := h.findCategory(ctx, ref)
	if err != nil {
		return nil, false, fmt.Errorf("find category: %w", err)
	}
	if c == nil || !c.IsActive() {
		return nil, false, nil
	}

	book, err := h.categoryBook(ctx, c)
	if err != nil {
		return nil, false, fmt.Errorf("load category %s: %w", c.Slug, err)
	}

	out, err := h.generator.CategoryCatalog(ctx, book)
	if err != nil {
		return nil, false, fmt.Errorf("render category %s: %w", c.Slug, err)
	}

	lead.CategoryID = &c.ID
	return &document{
		filename: c.Slug + "-catalog.pdf",
		label:    "Category: " + c.Name,
		pdf:      out,
	}, true, nil
}

// categoryBook groups the active products of a category by active
// sub-category. Products attached directly to the category come first.
// Products of an inactive sub-category are left out.
func (h *Export) categoryBook(ctx context.Context, c *models.Category) (pdf.CategoryBook, error) {
	book := pdf.CategoryBook{Category: *c}

	subs, err := h.subCategories.List(ctx, store.Filter{Status: models.StatusActive, CategoryID: &c.ID})
	if err != nil {
		return book, err
	}
	products, err := h.products.List(ctx, store.Filter{Status: models.StatusActive, CategoryID: &c.ID})
	if err != nil {
		return book, err
	}

	bySub := make(map[uuid.UUID][]pdf.ProductSheet, len(subs))
	var direct []pdf.ProductSheet
	for i := range products {
		p := &products[i]
		specs, err := h.products.Specs(ctx, p.ID)
		if err != nil {
			return book, err
		}
		sheet := pdf.ProductSheet{Product: *p, Category: c, Specs: specs}
		if p.SubCategoryID == nil {
			direct = append(direct, sheet)
			continue
		}
		bySub[*p.SubCategoryID] = append(bySub[*p.SubCategoryID], sheet)
	}

	if len(direct) > 0 {
		book.Sections = append(book.Sections, pdf.CategorySection{Products: direct})
	}
	for i := range subs {
		sc := &subs[i]
		sheets := bySub[sc.ID]
		if len(sheets) == 0 {
			continue
		}
		for j := range sheets {
			sheets[j].SubCategory = sc
		}
		book.Sections = append(book.Sections, pdf.CategorySection{SubCategory: sc, Products: sheets})
	}
	return book, nil
}
