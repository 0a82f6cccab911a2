// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"catalogweb/internal/auth"
	"catalogweb/internal/middleware"
)

// Auth groups the admin login, logout and session handlers.
type Auth struct {
	manager Authenticator
	cookies CookieJar
}

// NewAuth creates the auth handler group.
func NewAuth(manager Authenticator, cookies CookieJar) *Auth {
	return &Auth{manager: manager, cookies: cookies}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
}

// Login checks the admin credentials and, on success, returns a token and
// sets it as the session cookie. Failures set no cookie.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if h.manager.TOTPEnabled() && strings.TrimSpace(in.Code) == "" {
		writeError(w, http.StatusUnauthorized, "authentication code required")
		return
	}

	token, expires, err := h.manager.Login(r.Context(), in.Email, in.Password, strings.TrimSpace(in.Code))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Warn("admin login rejected", "email", in.Email, "remote", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		internalError(w, "admin login failed", err)
		return
	}

	h.cookies.SetCookie(w, token)
	slog.Info("admin logged in", "email", in.Email)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires, Email: in.Email})
}

// Logout revokes the current session and clears the cookie. It succeeds
// even without a session.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if token, _ := middleware.TokenFromRequest(r); token != "" {
		if err := h.manager.Logout(r.Context(), token); err != nil {
			slog.Warn("admin logout failed", "error", err)
		}
	}
	h.cookies.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the authenticated admin.
func (h *Auth) Session(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, id)
}

// TOTPQRCode returns the enrolment QR code of the configured second factor
// as a PNG image.
func (h *Auth) TOTPQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.manager.TOTPQRCode()
	if errors.Is(err, auth.ErrTOTPDisabled) {
		writeError(w, http.StatusNotFound, "two-factor authentication is not configured")
		return
	}
	if err != nil {
		internalError(w, "render totp qr code failed", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
