// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements the admin login. Credentials come from
// configuration and are checked with bcrypt plus an optional TOTP code.
// A successful login creates a server-side session and returns an HS256
// token whose ID is the session ID; every request verifies both the token
// and the session, so logging out revokes the token.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"

	"catalogweb/internal/session"
)

const issuer = "catalogweb"

var (
	// ErrInvalidCredentials is returned for a wrong email, password or
	// TOTP code. The caller cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token is malformed, expired,
	// wrongly signed or its session no longer exists.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrTOTPDisabled is returned when TOTP enrolment is requested but no
	// secret is configured.
	ErrTOTPDisabled = errors.New("totp is not configured")
)

// SessionStore persists admin sessions. session.Store satisfies it.
type SessionStore interface {
	Create(ctx context.Context, data *session.Data) (string, error)
	Get(ctx context.Context, id string) (*session.Data, error)
	Destroy(ctx context.Context, id string) error
}

// Config holds the admin credentials and token settings.
type Config struct {
	Email        string
	Password     string // plain text; hashed once at startup
	PasswordHash string // bcrypt; takes precedence over Password
	TOTPSecret   string // base32; empty disables the second factor
	JWTSecret    string
	TTL          time.Duration
}

// Identity is the authenticated admin attached to a request.
type Identity struct {
	SessionID string    `json:"-"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager issues and verifies admin tokens.
type Manager struct {
	email      string
	hash       []byte
	totpSecret string
	secret     []byte
	ttl        time.Duration
	sessions   SessionStore
	now        func() time.Time
}

// NewManager validates the configuration and returns a Manager. A plain
// password is hashed here so logins always compare against bcrypt.
func NewManager(cfg Config, sessions SessionStore) (*Manager, error) {
	if cfg.Email == "" {
		return nil, errors.New("auth: admin email is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("auth: jwt secret is required")
	}

	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		if cfg.Password == "" {
			return nil, errors.New("auth: admin password or password hash is required")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("auth: invalid password hash: %w", err)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = session.DefaultTTL
	}

	return &Manager{
		email:      strings.ToLower(strings.TrimSpace(cfg.Email)),
		hash:       hash,
		totpSecret: cfg.TOTPSecret,
		secret:     []byte(cfg.JWTSecret),
		ttl:        ttl,
		sessions:   sessions,
		now:        time.Now,
	}, nil
}

// TOTPEnabled reports whether logins require a TOTP code.
func (m *Manager) TOTPEnabled() bool {
	return m.totpSecret != ""
}

// Login checks the credentials and, on success, opens a session and
// returns a signed token with its expiry.
func (m *Manager) Login(ctx context.Context, email, password, code string) (string, time.Time, error) {
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))), []byte(m.email),
	) == 1

	// bcrypt runs even for a wrong email so both paths take the same time.
	passwordOK := bcrypt.CompareHashAndPassword(m.hash, []byte(password)) == nil

	if !emailOK || !passwordOK {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if m.TOTPEnabled() && !totp.Validate(strings.TrimSpace(code), m.totpSecret) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	data := &session.Data{Email: m.email}
	id, err := m.sessions.Create(ctx, data)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}

	now := m.now()
	expires := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   m.email,
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		m.sessions.Destroy(ctx, id)
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expires, nil
}

// parse validates the signature, algorithm, issuer and expiry of a token.
func (m *Manager) parse(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Verify checks a token and its backing session. It returns
// ErrInvalidToken for any token that must not be trusted.
func (m *Manager) Verify(ctx context.Context, raw string) (*Identity, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}
	claims, err := m.parse(raw)
	if err != nil {
		return nil, err
	}

	data, err := m.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data == nil || data.Email != claims.Subject {
		return nil, ErrInvalidToken
	}

	return &Identity{
		SessionID: claims.ID,
		Email:     data.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout destroys the session behind a token. Invalid tokens are ignored.
func (m *Manager) Logout(ctx context.Context, raw string) error {
	claims, err := m.parse(raw)
	if err != nil {
		return nil
	}
	return m.sessions.Destroy(ctx, claims.ID)
}

// TOTPURL returns the otpauth URL used to enrol an authenticator app.
func (m *Manager) TOTPURL() (string, error) {
	if !m.TOTPEnabled() {
		return "", ErrTOTPDisabled
	}
	return fmt.Sprintf("otpauth://totp/Catalog:%s?secret=%s&issuer=Catalog",
		url.PathEscape(m.email), m.totpSecret), nil
}

// TOTPQRCode renders the enrolment URL as a PNG QR code.
func (m *Manager) TOTPQRCode() ([]byte, error) {
	u, err := m.TOTPURL()
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(u, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode totp qr: %w", err)
	}
	return png, nil
}

// GenerateTOTPSecret creates a new base32 secret for ADMIN_TOTP_SECRET.
func GenerateTOTPSecret(account string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Catalog",
		AccountName: account,
	})
	if err != nil {
		return "", fmt.Errorf("generate totp secret: %w", err)
	}
	return key.Secret(), nil
}
