// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"catalogweb/internal/models"
)

// ProductStore manages products and their technical specs.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, slug, category_id, sub_category_id, description, image_url,
	status, featured, sort_order, created_at, updated_at`

func scanProduct(s scanner) (*models.Product, error) {
	var p models.Product
	err := s.Scan(
		&p.ID, &p.Name, &p.Slug, &p.CategoryID, &p.SubCategoryID,
		&p.Description, &p.ImageURL, &p.Status, &p.Featured, &p.SortOrder,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products ordered by sort_order then name. All filter fields
// apply.
func (s *ProductStore) List(ctx context.Context, f Filter) ([]models.Product, error) {
	where, args := f.where("status", "category_id", "sub_category_id", "featured")
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products`+where+` ORDER BY sort_order, name`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a product by ID without its specs. Returns nil if not
// found.
func (s *ProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a product by slug without its specs. Returns nil if
// not found.
func (s *ProductStore) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new product. Returns ErrInvalidParent when neither
// parent is set or a referenced parent does not exist.
func (s *ProductStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, slug, category_id, sub_category_id, description,
			image_url, status, featured, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+productColumns,
		p.Name, p.Slug, p.CategoryID, p.SubCategoryID, p.Description,
		p.ImageURL, string(p.Status), p.Featured, p.SortOrder,
	)
	result, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", writeError(err))
	}
	return result, nil
}

// Update replaces the editable fields of a product. Returns nil if it does
// not exist.
func (s *ProductStore) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE products SET
			name = $1, slug = $2, category_id = $3, sub_category_id = $4,
			description = $5, image_url = $6, status = $7, featured = $8,
			sort_order = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING `+productColumns,
		p.Name, p.Slug, p.CategoryID, p.SubCategoryID, p.Description,
		p.ImageURL, string(p.Status), p.Featured, p.SortOrder, p.ID,
	)
	result, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", writeError(err))
	}
	return result, nil
}

// SetStatus applies a partial update (status, featured flag and sort
// order). Returns nil if the product does not exist.
func (s *ProductStore) SetStatus(ctx context.Context, id uuid.UUID, p Patch) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE products SET
			status = COALESCE($1, status),
			sort_order = COALESCE($2, sort_order),
			featured = COALESCE($3, featured),
			updated_at = NOW()
		WHERE id = $4
		RETURNING `+productColumns,
		p.statusArg(), p.sortOrderArg(), p.featuredArg(), id,
	)
	result, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("patch product: %w", err)
	}
	return result, nil
}

// Delete removes a product. Its specs are removed by cascade and catalog
// enquiries keep their record with the product reference cleared.
func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", deleteError(err))
	}
	return nil
}

// Specs returns the technical specs of a product in display order.
func (s *ProductStore) Specs(ctx context.Context, productID uuid.UUID) ([]models.TechnicalSpec, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, spec_key, spec_values, sort_order
		FROM product_technical_specs
		WHERE product_id = $1
		ORDER BY sort_order, spec_key
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list specs: %w", err)
	}
	defer rows.Close()

	var specs []models.TechnicalSpec
	for rows.Next() {
		var (
			spec models.TechnicalSpec
			raw  []byte
		)
		if err := rows.Scan(&spec.ID, &spec.ProductID, &spec.Key, &raw, &spec.SortOrder); err != nil {
			return nil, fmt.Errorf("scan spec: %w", err)
		}
		if err := json.Unmarshal(raw, &spec.Values); err != nil {
			return nil, fmt.Errorf("decode spec values: %w", err)
		}
		specs = append(specs, spec)
	}
	return specs, rows.Err()
}

// ReplaceSpecs deletes every spec of a product and inserts the given list
// in a single transaction. Sort order follows the slice order.
func (s *ProductStore) ReplaceSpecs(ctx context.Context, productID uuid.UUID, specs []models.TechnicalSpec) ([]models.TechnicalSpec, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_technical_specs WHERE product_id = $1`, productID); err != nil {
		return nil, fmt.Errorf("clear specs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO product_technical_specs (product_id, spec_key, spec_values, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert spec: %w", err)
	}
	defer stmt.Close()

	out := make([]models.TechnicalSpec, 0, len(specs))
	for i, spec := range specs {
		if spec.Values == nil {
			spec.Values = []string{}
		}
		values, err := json.Marshal(spec.Values)
		if err != nil {
			return nil, fmt.Errorf("encode spec values: %w", err)
		}

		spec.ProductID = productID
		spec.SortOrder = i
		if err := stmt.QueryRowContext(ctx, productID, spec.Key, values, i).Scan(&spec.ID); err != nil {
			return nil, fmt.Errorf("insert spec %q: %w", spec.Key, writeError(err))
		}
		out = append(out, spec)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit specs: %w", err)
	}
	return out, nil
}
