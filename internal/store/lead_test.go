// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"catalogweb/internal/models"
)

func TestContactStoreLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewContactStore(db)
	ctx := context.Background()

	c, err := s.Create(ctx, &models.Contact{
		Name:    "Jane Buyer",
		Email:   "jane@store-test.local",
		Message: "Please send a quote.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM contacts WHERE id = $1", c.ID) })

	if c.Status != models.ContactStatusNew {
		t.Errorf("status = %q, want new", c.Status)
	}

	updated, err := s.UpdateStatus(ctx, c.ID, models.ContactStatusReplied)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != models.ContactStatusReplied {
		t.Errorf("status = %q, want replied", updated.Status)
	}

	replied, err := s.List(ctx, models.ContactStatusReplied)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var found bool
	for _, r := range replied {
		if r.ID == c.ID {
			found = true
		}
		if r.Status != models.ContactStatusReplied {
			t.Errorf("List(replied) returned status %q", r.Status)
		}
	}
	if !found {
		t.Error("updated contact missing from filtered list")
	}

	if err := s.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.FindByID(ctx, c.ID)
	if err != nil || gone != nil {
		t.Errorf("FindByID after delete = %v, %v", gone, err)
	}
}

func TestEnquiryStoreKeepsLeadWhenProductDeleted(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	products := NewProductStore(db)
	enquiries := NewEnquiryStore(db)

	c := createTestCategory(t, db)
	p, err := products.Create(ctx, &models.Product{
		Name:       "Lead Product",
		Slug:       uniqueSlug("lead-product"),
		CategoryID: &c.ID,
		Status:     models.StatusActive,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	e, err := enquiries.Create(ctx, &models.CatalogEnquiry{
		Name:      "Bob",
		Email:     "bob@store-test.local",
		ProductID: &p.ID,
		Document:  "Lead Product",
	})
	if err != nil {
		t.Fatalf("Create enquiry: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM catalog_enquiries WHERE id = $1", e.ID) })

	if err := products.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	got, err := enquiries.FindByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil {
		t.Fatal("enquiry should survive product deletion")
	}
	if got.ProductID != nil {
		t.Error("product reference should be cleared")
	}
	if got.Document != "Lead Product" {
		t.Errorf("document = %q", got.Document)
	}
}
