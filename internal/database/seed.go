// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
)

type seedProduct struct {
	name, slug, description string
	featured                bool
	specs                   []seedSpec
}

type seedSpec struct {
	key    string
	values []string
}

type seedSubCategory struct {
	name, slug, description string
	products                []seedProduct
}

type seedCategory struct {
	name, slug, description string
	subCategories           []seedSubCategory
}

// demoCatalog is the development catalog inserted on an empty database.
var demoCatalog = []seedCategory{
	{
		name:        "Cables",
		slug:        "cables",
		description: "Power and data cables for industrial installations.",
		subCategories: []seedSubCategory{
			{
				name:        "Power Cables",
				slug:        "power-cables",
				description: "Low and medium voltage power cables.",
				products: []seedProduct{
					{
						name:        "NYY-J 3x2.5",
						slug:        "nyy-j-3x2-5",
						description: "PVC insulated power cable for **fixed installation** indoors and outdoors.",
						featured:    true,
						specs: []seedSpec{
							{key: "Cross section", values: []string{"3 x 2.5 mm²"}},
							{key: "Rated voltage", values: []string{"0.6/1 kV"}},
							{key: "Standards", values: []string{"IEC 60502-1", "VDE 0276-603"}},
						},
					},
				},
			},
			{
				name:        "Data Cables",
				slug:        "data-cables",
				description: "Shielded and unshielded data cables.",
				products: []seedProduct{
					{
						name:        "Cat6 S/FTP",
						slug:        "cat6-s-ftp",
						description: "Shielded twisted pair cable for structured cabling up to 250 MHz.",
						specs: []seedSpec{
							{key: "Category", values: []string{"Cat6"}},
							{key: "Shielding", values: []string{"S/FTP"}},
						},
					},
				},
			},
		},
	},
	{
		name:        "Lighting",
		slug:        "lighting",
		description: "LED fixtures for commercial and industrial spaces.",
		subCategories: []seedSubCategory{
			{
				name:        "High Bay",
				slug:        "high-bay",
				description: "High bay LED luminaires for warehouses.",
				products: []seedProduct{
					{
						name:        "HB-150 LED",
						slug:        "hb-150-led",
						description: "150 W high bay luminaire with *IP65* housing.",
						featured:    true,
						specs: []seedSpec{
							{key: "Power", values: []string{"150 W"}},
							{key: "Luminous flux", values: []string{"21000 lm"}},
							{key: "Beam angle", values: []string{"60°", "90°", "120°"}},
						},
					},
				},
			},
		},
	},
}

// Seed populates an empty database with a small demo catalog for
// development. It does nothing when any category already exists.
func Seed(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	var products int
	for ci, cat := range demoCatalog {
		var catID string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO categories (name, slug, description, sort_order)
			VALUES ($1, $2, $3, $4) RETURNING id
		`, cat.name, cat.slug, cat.description, ci).Scan(&catID)
		if err != nil {
			return fmt.Errorf("seed insert category %s: %w", cat.slug, err)
		}

		for si, sub := range cat.subCategories {
			var subID string
			err := tx.QueryRowContext(ctx, `
				INSERT INTO sub_categories (category_id, name, slug, description, sort_order)
				VALUES ($1, $2, $3, $4, $5) RETURNING id
			`, catID, sub.name, sub.slug, sub.description, si).Scan(&subID)
			if err != nil {
				return fmt.Errorf("seed insert sub-category %s: %w", sub.slug, err)
			}

			for pi, p := range sub.products {
				var productID string
				err := tx.QueryRowContext(ctx, `
					INSERT INTO products (name, slug, category_id, sub_category_id, description, featured, sort_order)
					VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id
				`, p.name, p.slug, catID, subID, p.description, p.featured, pi).Scan(&productID)
				if err != nil {
					return fmt.Errorf("seed insert product %s: %w", p.slug, err)
				}
				products++

				for i, spec := range p.specs {
					values, err := json.Marshal(spec.values)
					if err != nil {
						return fmt.Errorf("seed marshal spec values: %w", err)
					}
					_, err = tx.ExecContext(ctx, `
						INSERT INTO product_technical_specs (product_id, spec_key, spec_values, sort_order)
						VALUES ($1, $2, $3, $4)
					`, productID, spec.key, values, i)
					if err != nil {
						return fmt.Errorf("seed insert spec %s: %w", spec.key, err)
					}
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo catalog",
		"categories", len(demoCatalog),
		"products", products,
	)
	return nil
}
