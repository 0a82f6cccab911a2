// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level catalog grouping rendered in the storefront
// navigation. Slug is unique and used as the URL key.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Status      Status    `json:"status"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsActive returns true if the category is visible on the storefront.
func (c *Category) IsActive() bool {
	return c.Status == StatusActive
}

// SubCategory belongs to exactly one Category.
type SubCategory struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Status      Status    `json:"status"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsActive returns true if the sub-category is visible on the storefront.
func (s *SubCategory) IsActive() bool {
	return s.Status == StatusActive
}

// Product is a catalog item. It references a category, a sub-category, or
// both; when both are set the sub-category belongs to the category.
// Description holds Markdown source.
type Product struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	CategoryID    *uuid.UUID `json:"category_id"`
	SubCategoryID *uuid.UUID `json:"sub_category_id"`
	Description   string     `json:"description"`
	ImageURL      string     `json:"image_url"`
	Status        Status     `json:"status"`
	Featured      bool       `json:"featured"`
	SortOrder     int        `json:"sort_order"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Populated only by single-product reads.
	Specs []TechnicalSpec `json:"specs,omitempty"`
}

// IsActive returns true if the product is visible on the storefront.
func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}

// TechnicalSpec is a named attribute with a list of values attached to a
// product, e.g. "Voltage" -> ["230 V", "110 V"].
type TechnicalSpec struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Key       string    `json:"key"`
	Values    []string  `json:"values"`
	SortOrder int       `json:"sort_order"`
}
