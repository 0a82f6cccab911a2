// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func credentials(password, code string) map[string]any {
	body := map[string]any{"email": testAdminEmail, "password": password}
	if code != "" {
		body["code"] = code
	}
	return body
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "catalog_admin" {
			return c
		}
	}
	return nil
}

// TestLoginSuccess verifies that valid credentials return a token and set
// it as the session cookie.
func TestLoginSuccess(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/login", credentials(testAdminPassword, ""), false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[loginResponse](t, rec)
	assert.Equal(t, testToken, resp.Token)
	assert.Equal(t, testAdminEmail, resp.Email)
	assert.False(t, resp.ExpiresAt.IsZero())

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Equal(t, testToken, c.Value)
}

// TestLoginFailureSetsNoCookie verifies that a rejected login answers 401
// without touching the session cookie.
func TestLoginFailureSetsNoCookie(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/login", credentials("wrong", ""), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", errorMessage(t, rec))
	assert.Nil(t, sessionCookie(rec))
}

func TestLoginMissingFields(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/login", map[string]any{"email": testAdminEmail}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email and password are required", errorMessage(t, rec))
}

func TestLoginWithTOTP(t *testing.T) {
	e := newEnv(t)
	e.auth.totp = true

	rec := e.do(http.MethodPost, "/api/login", credentials(testAdminPassword, ""), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication code required", errorMessage(t, rec))

	rec = e.do(http.MethodPost, "/api/login", credentials(testAdminPassword, "000000"), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(rec))

	rec = e.do(http.MethodPost, "/api/login", credentials(testAdminPassword, "123456"), false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, sessionCookie(rec))
}

func TestLogoutRevokesBearerToken(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := e.serve(req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{testToken}, e.auth.loggedOut)
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}

func TestLogoutWithoutSession(t *testing.T) {
	e := newEnv(t)
	rec := e.do(http.MethodPost, "/api/logout", nil, false)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, e.auth.loggedOut)
}

func TestSession(t *testing.T) {
	e := newEnv(t)

	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/session", nil, false).Code)

	rec := e.do(http.MethodGet, "/api/session", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testAdminEmail, decode[map[string]any](t, rec)["email"])
}

func TestTOTPQRCode(t *testing.T) {
	e := newEnv(t)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/admin/totp", nil, true).Code)

	e.auth.totp = true
	rec := e.do(http.MethodGet, "/api/admin/totp", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}
