// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides PostgreSQL-backed persistence for the catalog and
// its leads. Lookups return (nil, nil) when a record does not exist so
// callers can distinguish "missing" from "failed".
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"catalogweb/internal/models"
)

var (
	// ErrSlugTaken is returned when a create or update collides with an
	// existing slug.
	ErrSlugTaken = errors.New("slug already in use")

	// ErrHasDependents is returned when deleting a record that other
	// records still reference.
	ErrHasDependents = errors.New("record has dependent records")

	// ErrInvalidParent is returned when a referenced parent record does not
	// exist or a product has no parent at all.
	ErrInvalidParent = errors.New("parent record missing or unknown")
)

// PostgreSQL error codes inspected by the stores.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// writeError maps constraint violations raised by INSERT and UPDATE
// statements to the store sentinels.
func writeError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return ErrSlugTaken
		case codeForeignKeyViolation, codeCheckViolation:
			return ErrInvalidParent
		}
	}
	return err
}

// deleteError maps a foreign-key violation raised by DELETE to
// ErrHasDependents.
func deleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return ErrHasDependents
	}
	return err
}

// Filter narrows catalog list queries. Zero fields are ignored.
type Filter struct {
	Status        models.Status
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
	Featured      *bool
}

// where renders the filter as a SQL WHERE clause with positional
// arguments. Only the columns listed in allowed are considered.
func (f Filter) where(allowed ...string) (string, []any) {
	has := func(col string) bool {
		for _, a := range allowed {
			if a == col {
				return true
			}
		}
		return false
	}

	var conds []string
	var args []any
	add := func(col string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if f.Status != "" && has("status") {
		add("status", string(f.Status))
	}
	if f.CategoryID != nil && has("category_id") {
		add("category_id", *f.CategoryID)
	}
	if f.SubCategoryID != nil && has("sub_category_id") {
		add("sub_category_id", *f.SubCategoryID)
	}
	if f.Featured != nil && has("featured") {
		add("featured", *f.Featured)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Patch carries the fields a PATCH request may change. Nil fields are left
// untouched. Featured only applies to products.
type Patch struct {
	Status    *models.Status
	SortOrder *int
	Featured  *bool
}

// statusArg converts an optional status to a driver value.
func (p Patch) statusArg() any {
	if p.Status == nil {
		return nil
	}
	return string(*p.Status)
}

func (p Patch) sortOrderArg() any {
	if p.SortOrder == nil {
		return nil
	}
	return *p.SortOrder
}

func (p Patch) featuredArg() any {
	if p.Featured == nil {
		return nil
	}
	return *p.Featured
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface{ Scan(...any) error }
