// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"regexp"
	"testing"
	"time"
)

func TestNewWithoutCredentials(t *testing.T) {
	c, err := New("", "auto", "", "", "catalog-public", "")
	if err != nil || c != nil {
		t.Errorf("New without endpoint = %v, %v; want nil, nil", c, err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New("https://s3.example.com", "auto", "key", "secret", "", ""); err == nil {
		t.Error("expected error for empty bucket")
	}
}

func TestFileURLAndExtractKey(t *testing.T) {
	tests := []struct {
		name      string
		publicURL string
		wantURL   string
	}{
		{"path style", "", "https://s3.example.com/catalog-public/products/2026/01/a.png"},
		{"public url", "https://cdn.example.com/", "https://cdn.example.com/products/2026/01/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New("https://s3.example.com/", "auto", "key", "secret", "catalog-public", tt.publicURL)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			key := "products/2026/01/a.png"
			u := c.FileURL(key)
			if u != tt.wantURL {
				t.Errorf("FileURL = %q, want %q", u, tt.wantURL)
			}

			got, ok := c.ExtractKey(u)
			if !ok || got != key {
				t.Errorf("ExtractKey(%q) = %q, %v", u, got, ok)
			}
		})
	}

	c, _ := New("https://s3.example.com", "auto", "key", "secret", "catalog-public", "")
	if _, ok := c.ExtractKey("https://elsewhere.example.com/image.png"); ok {
		t.Error("foreign URL should not match")
	}
}

func TestObjectKey(t *testing.T) {
	now := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)
	key := ObjectKey("products", ".webp", now)

	pattern := regexp.MustCompile(`^products/2026/03/[0-9a-f-]{36}\.webp$`)
	if !pattern.MatchString(key) {
		t.Errorf("ObjectKey = %q, does not match %s", key, pattern)
	}

	if ObjectKey("products", ".webp", now) == key {
		t.Error("keys should be unique")
	}
}
