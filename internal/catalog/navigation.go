// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog assembles catalog data for presentation: the storefront
// navigation menu and the breadcrumb trail of a product.
package catalog

import (
	"sort"

	"github.com/google/uuid"

	"catalogweb/internal/models"
)

// NavGroup is one entry of the storefront navigation menu: an active
// category with its active sub-categories.
type NavGroup struct {
	Category      models.Category
	SubCategories []models.SubCategory
}

// BuildNavigation groups sub-categories under their parent category.
// Inactive records are dropped and sub-categories whose parent is not in
// the list are ignored. Both levels are ordered by sort order then name.
func BuildNavigation(categories []models.Category, subCategories []models.SubCategory) []NavGroup {
	byParent := make(map[uuid.UUID][]models.SubCategory)
	for _, sc := range subCategories {
		if !sc.IsActive() {
			continue
		}
		byParent[sc.CategoryID] = append(byParent[sc.CategoryID], sc)
	}

	groups := make([]NavGroup, 0, len(categories))
	for _, c := range categories {
		if !c.IsActive() {
			continue
		}
		subs := byParent[c.ID]
		sort.SliceStable(subs, func(i, j int) bool {
			if subs[i].SortOrder != subs[j].SortOrder {
				return subs[i].SortOrder < subs[j].SortOrder
			}
			return subs[i].Name < subs[j].Name
		})
		groups = append(groups, NavGroup{Category: c, SubCategories: subs})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Category, groups[j].Category
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Name < b.Name
	})
	return groups
}

// Crumb is one link of a breadcrumb trail.
type Crumb struct {
	Name string
	URL  string
}

// Breadcrumbs returns the trail from the home page down to the given
// category and optional sub-category.
func Breadcrumbs(category *models.Category, sub *models.SubCategory) []Crumb {
	crumbs := []Crumb{{Name: "Home", URL: "/"}}
	if category == nil {
		return crumbs
	}
	crumbs = append(crumbs, Crumb{Name: category.Name, URL: CategoryURL(category.Slug)})
	if sub != nil {
		crumbs = append(crumbs, Crumb{Name: sub.Name, URL: SubCategoryURL(category.Slug, sub.Slug)})
	}
	return crumbs
}

// CategoryURL returns the storefront path of a category.
func CategoryURL(slug string) string {
	return "/categories/" + slug
}

// SubCategoryURL returns the storefront path of a sub-category.
func SubCategoryURL(categorySlug, slug string) string {
	return "/categories/" + categorySlug + "/" + slug
}

// ProductURL returns the storefront path of a product.
func ProductURL(slug string) string {
	return "/products/" + slug
}
