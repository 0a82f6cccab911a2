// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogweb/internal/models"
)

// TestHomeListsActiveCatalog verifies the home page shows active
// categories and featured products only.
func TestHomeListsActiveCatalog(t *testing.T) {
	e := newEnv(t)
	c := e.seedCategory(t, "Power Tools", models.StatusActive)
	e.seedCategory(t, "Secret Range", models.StatusInactive)
	drill := e.seedProduct(t, "Hammer Drill", &c.ID, nil, models.StatusActive)
	drill.Featured = true
	e.db.products[drill.ID] = drill
	e.seedProduct(t, "Plain Saw", &c.ID, nil, models.StatusActive)

	rec := e.do(http.MethodGet, "/", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "Test Catalog")
	assert.Contains(t, body, "Power Tools")
	assert.Contains(t, body, "Hammer Drill")
	assert.NotContains(t, body, "Secret Range")
	assert.NotContains(t, body, "Plain Saw")
}

// TestPagesAreCached verifies that a rendered page is served from the
// cache until a catalog write invalidates it.
func TestPagesAreCached(t *testing.T) {
	e := newEnv(t)
	c := e.seedCategory(t, "Tools", models.StatusActive)

	first := e.do(http.MethodGet, "/categories/tools", nil, false)
	require.Equal(t, http.StatusOK, first.Code)
	_, cached := e.pages.Get(t.Context(), "categories/tools")
	require.True(t, cached)

	// Changing the store directly bypasses invalidation, so the stale
	// page keeps being served.
	c.Name = "Renamed Tools"
	e.db.categories[c.ID] = c
	assert.NotContains(t, e.do(http.MethodGet, "/categories/tools", nil, false).Body.String(), "Renamed Tools")

	rec := e.do(http.MethodPatch, "/api/categories/"+c.ID.String(), map[string]any{"sort_order": 2}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, e.do(http.MethodGet, "/categories/tools", nil, false).Body.String(), "Renamed Tools")
}

func TestCategoryPage(t *testing.T) {
	e := newEnv(t)
	c := e.seedCategory(t, "Tools", models.StatusActive)
	sc := e.seedSubCategory(t, c, "Drills", models.StatusActive)
	e.seedSubCategory(t, c, "Retired Range", models.StatusInactive)
	e.seedProduct(t, "Loose Saw", &c.ID, nil, models.StatusActive)
	e.seedProduct(t, "Cordless Drill", &c.ID, &sc.ID, models.StatusActive)

	rec := e.do(http.MethodGet, "/categories/tools", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "/categories/tools/drills")
	assert.Contains(t, body, "Loose Saw")
	assert.NotContains(t, body, "Cordless Drill")
	assert.NotContains(t, body, "Retired Range")
	assert.Contains(t, body, "data-catalog-form")
}

func TestSubCategoryPage(t *testing.T) {
	e := newEnv(t)
	tools := e.seedCategory(t, "Tools", models.StatusActive)
	garden := e.seedCategory(t, "Garden", models.StatusActive)
	sc := e.seedSubCategory(t, tools, "Drills", models.StatusActive)
	e.seedProduct(t, "Cordless Drill", &tools.ID, &sc.ID, models.StatusActive)
	e.seedProduct(t, "Retired Drill", &tools.ID, &sc.ID, models.StatusInactive)

	rec := e.do(http.MethodGet, "/categories/tools/drills", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cordless Drill")
	assert.NotContains(t, rec.Body.String(), "Retired Drill")

	// The sub-category must sit under the category in the path.
	rec = e.do(http.MethodGet, "/categories/"+garden.Slug+"/drills", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductPage(t *testing.T) {
	e := newEnv(t)
	c := e.seedCategory(t, "Tools", models.StatusActive)
	p := e.seedProduct(t, "Hammer Drill", &c.ID, nil, models.StatusActive)
	p.Description = "A **strong** drill."
	e.db.products[p.ID] = p
	e.db.specs[p.ID] = []models.TechnicalSpec{{ProductID: p.ID, Key: "Voltage", Values: []string{"230 V", "110 V"}}}

	rec := e.do(http.MethodGet, "/products/hammer-drill", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<strong>strong</strong>")
	assert.Contains(t, body, "Voltage")
	assert.Contains(t, body, "230 V, 110 V")
	assert.Contains(t, body, `value="hammer-drill"`)
}

func TestProductPageHiddenParents(t *testing.T) {
	e := newEnv(t)
	hidden := e.seedCategory(t, "Hidden", models.StatusInactive)
	e.seedProduct(t, "Orphan", &hidden.ID, nil, models.StatusActive)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/products/orphan", nil, false).Code)
}

func TestNotFoundPagesAreNotCached(t *testing.T) {
	e := newEnv(t)
	e.seedProduct(t, "Draft", nil, nil, models.StatusInactive)

	for _, path := range []string{"/products/draft", "/products/missing", "/categories/missing", "/no/such/page"} {
		rec := e.do(http.MethodGet, path, nil, false)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Page not found", path)
	}
	assert.Empty(t, e.pages.pages)
}

func TestContactPageShowsCaptcha(t *testing.T) {
	e := newEnv(t)
	rec := e.do(http.MethodGet, "/contact", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), testCaptcha)
	assert.Contains(t, rec.Body.String(), "data-json-form")
}
