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

// SubCategoryStore manages sub-categories in the database.
type SubCategoryStore struct {
	db *sql.DB
}

// NewSubCategoryStore returns a new SubCategoryStore.
func NewSubCategoryStore(db *sql.DB) *SubCategoryStore {
	return &SubCategoryStore{db: db}
}

const subCategoryColumns = `id, category_id, name, slug, description, image_url, status, sort_order, created_at, updated_at`

func scanSubCategory(s scanner) (*models.SubCategory, error) {
	var c models.SubCategory
	err := s.Scan(
		&c.ID, &c.CategoryID, &c.Name, &c.Slug, &c.Description, &c.ImageURL,
		&c.Status, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns sub-categories ordered by sort_order then name. Status and
// CategoryID filters apply.
func (s *SubCategoryStore) List(ctx context.Context, f Filter) ([]models.SubCategory, error) {
	where, args := f.where("status", "category_id")
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+subCategoryColumns+` FROM sub_categories`+where+` ORDER BY sort_order, name`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list sub-categories: %w", err)
	}
	defer rows.Close()

	var items []models.SubCategory
	for rows.Next() {
		c, err := scanSubCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sub-category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a sub-category by ID. Returns nil if not found.
func (s *SubCategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.SubCategory, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+subCategoryColumns+` FROM sub_categories WHERE id = $1`, id)
	c, err := scanSubCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find sub-category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a sub-category by slug. Returns nil if not found.
func (s *SubCategoryStore) FindBySlug(ctx context.Context, slug string) (*models.SubCategory, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+subCategoryColumns+` FROM sub_categories WHERE slug = $1`, slug)
	c, err := scanSubCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find sub-category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new sub-category. Returns ErrInvalidParent when the
// parent category does not exist.
func (s *SubCategoryStore) Create(ctx context.Context, c *models.SubCategory) (*models.SubCategory, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO sub_categories (category_id, name, slug, description, image_url, status, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+subCategoryColumns,
		c.CategoryID, c.Name, c.Slug, c.Description, c.ImageURL, string(c.Status), c.SortOrder,
	)
	result, err := scanSubCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create sub-category: %w", writeError(err))
	}
	return result, nil
}

// Update replaces the editable fields of a sub-category. Products of the
// sub-category follow it when it moves to another category. Returns nil if
// it does not exist.
func (s *SubCategoryStore) Update(ctx context.Context, c *models.SubCategory) (*models.SubCategory, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		UPDATE sub_categories SET
			category_id = $1, name = $2, slug = $3, description = $4,
			image_url = $5, status = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+subCategoryColumns,
		c.CategoryID, c.Name, c.Slug, c.Description, c.ImageURL, string(c.Status), c.SortOrder, c.ID,
	)
	result, err := scanSubCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update sub-category: %w", writeError(err))
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE products SET category_id = $1, updated_at = NOW()
		WHERE sub_category_id = $2 AND category_id IS DISTINCT FROM $1
	`, result.CategoryID, result.ID); err != nil {
		return nil, fmt.Errorf("move sub-category products: %w", writeError(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sub-category update: %w", err)
	}
	return result, nil
}

// SetStatus applies a partial update (status and sort order).
func (s *SubCategoryStore) SetStatus(ctx context.Context, id uuid.UUID, p Patch) (*models.SubCategory, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE sub_categories SET
			status = COALESCE($1, status),
			sort_order = COALESCE($2, sort_order),
			updated_at = NOW()
		WHERE id = $3
		RETURNING `+subCategoryColumns,
		p.statusArg(), p.sortOrderArg(), id,
	)
	result, err := scanSubCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("patch sub-category: %w", err)
	}
	return result, nil
}

// CountDependents returns how many products reference the sub-category.
func (s *SubCategoryStore) CountDependents(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE sub_category_id = $1`, id,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sub-category dependents: %w", err)
	}
	return n, nil
}

// Delete removes a sub-category. Returns ErrHasDependents while products
// still reference it.
func (s *SubCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasDependents
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM sub_categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete sub-category: %w", deleteError(err))
	}
	return nil
}
