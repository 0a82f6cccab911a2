// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"catalogweb/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, image_url, status, sort_order, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(s scanner) (*models.Category, error) {
	var c models.Category
	err := s.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL,
		&c.Status, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns categories ordered by sort_order then name. Only the Status
// field of the filter applies.
func (s *CategoryStore) List(ctx context.Context, f Filter) ([]models.Category, error) {
	where, args := f.where("status")
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories`+where+` ORDER BY sort_order, name`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description, image_url, status, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.ImageURL, string(c.Status), c.SortOrder,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", writeError(err))
	}
	return result, nil
}

// Update replaces the editable fields of a category. Returns nil if the
// category does not exist.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, description = $3, image_url = $4,
			status = $5, sort_order = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.ImageURL, string(c.Status), c.SortOrder, c.ID,
	)
	result, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", writeError(err))
	}
	return result, nil
}

// SetStatus applies a partial update (status and sort order). Returns nil
// if the category does not exist.
func (s *CategoryStore) SetStatus(ctx context.Context, id uuid.UUID, p Patch) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE categories SET
			status = COALESCE($1, status),
			sort_order = COALESCE($2, sort_order),
			updated_at = NOW()
		WHERE id = $3
		RETURNING `+categoryColumns,
		p.statusArg(), p.sortOrderArg(), id,
	)
	result, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("patch category: %w", err)
	}
	return result, nil
}

// CountDependents returns how many sub-categories and products reference
// the category.
func (s *CategoryStore) CountDependents(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM sub_categories WHERE category_id = $1)
		     + (SELECT COUNT(*) FROM products WHERE category_id = $1)
	`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count category dependents: %w", err)
	}
	return n, nil
}

// Delete removes a category. Returns ErrHasDependents while sub-categories
// or products still reference it.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasDependents
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", deleteError(err))
	}
	return nil
}
