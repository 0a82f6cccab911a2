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

// EnquiryStore manages catalog download leads.
type EnquiryStore struct {
	db *sql.DB
}

// NewEnquiryStore returns a new EnquiryStore.
func NewEnquiryStore(db *sql.DB) *EnquiryStore {
	return &EnquiryStore{db: db}
}

const enquiryColumns = `id, name, email, phone, product_id, category_id, document, status, created_at`

func scanEnquiry(s scanner) (*models.CatalogEnquiry, error) {
	var e models.CatalogEnquiry
	err := s.Scan(
		&e.ID, &e.Name, &e.Email, &e.Phone, &e.ProductID, &e.CategoryID,
		&e.Document, &e.Status, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create stores a new catalog enquiry with status "new".
func (s *EnquiryStore) Create(ctx context.Context, e *models.CatalogEnquiry) (*models.CatalogEnquiry, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO catalog_enquiries (name, email, phone, product_id, category_id, document)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+enquiryColumns,
		e.Name, e.Email, e.Phone, e.ProductID, e.CategoryID, e.Document,
	)
	result, err := scanEnquiry(row)
	if err != nil {
		return nil, fmt.Errorf("create catalog enquiry: %w", err)
	}
	return result, nil
}

// List returns enquiries newest first, optionally restricted to one status.
func (s *EnquiryStore) List(ctx context.Context, status models.EnquiryStatus) ([]models.CatalogEnquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM catalog_enquiries`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list catalog enquiries: %w", err)
	}
	defer rows.Close()

	var items []models.CatalogEnquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog enquiry: %w", err)
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

// FindByID retrieves an enquiry by ID. Returns nil if not found.
func (s *EnquiryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.CatalogEnquiry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+enquiryColumns+` FROM catalog_enquiries WHERE id = $1`, id)
	e, err := scanEnquiry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find catalog enquiry by id: %w", err)
	}
	return e, nil
}

// UpdateStatus changes the status of an enquiry. Returns nil if it does
// not exist.
func (s *EnquiryStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.EnquiryStatus) (*models.CatalogEnquiry, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE catalog_enquiries SET status = $1 WHERE id = $2 RETURNING `+enquiryColumns,
		string(status), id,
	)
	e, err := scanEnquiry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update catalog enquiry status: %w", err)
	}
	return e, nil
}

// Delete removes an enquiry.
func (s *EnquiryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM catalog_enquiries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete catalog enquiry: %w", err)
	}
	return nil
}
