// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"catalogweb/internal/slug"
)

// Validation limits for catalog and lead fields.
const (
	maxNameLen        = 200
	maxSlugLen        = 200
	maxDescriptionLen = 20_000
	maxURLLen         = 2_048
	maxEmailLen       = 254
	maxPhoneLen       = 50
	maxSubjectLen     = 300
	maxMessageLen     = 5_000
	maxSpecs          = 100
	maxSpecKeyLen     = 200
	maxSpecValueLen   = 500
)

// validateCatalogFields checks the fields shared by categories,
// sub-categories and products and returns the first error found.
func validateCatalogFields(name, description, imageURL string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 200 characters)"
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "description is too long (max 20,000 characters)"
	}
	if len(imageURL) > maxURLLen {
		return "image_url is too long"
	}
	if imageURL != "" && !strings.HasPrefix(imageURL, "https://") &&
		!strings.HasPrefix(imageURL, "http://") && !strings.HasPrefix(imageURL, "/") {
		return "image_url must be an absolute URL or path"
	}
	return ""
}

// resolveSlug normalises an explicit slug or derives one from name.
func resolveSlug(name, explicit string) (string, string) {
	src := explicit
	if strings.TrimSpace(src) == "" {
		src = name
	}
	s := slug.Generate(src)
	if s == "" {
		return "", "slug could not be derived; use letters or digits"
	}
	if utf8.RuneCountInString(s) > maxSlugLen {
		return "", "slug is too long (max 200 characters)"
	}
	return s, ""
}

// validateEmail checks that email is a single bare address.
func validateEmail(email string) string {
	if email == "" {
		return "email is required"
	}
	if len(email) > maxEmailLen {
		return "email is too long"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "email is not a valid address"
	}
	return ""
}

// validateLead checks the requester fields shared by contact messages and
// catalog downloads.
func validateLead(name, email, phone string) string {
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 200 characters)"
	}
	if msg := validateEmail(email); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(phone) > maxPhoneLen {
		return "phone is too long"
	}
	return ""
}

// validateContactMessage checks the free-text part of a contact message.
func validateContactMessage(subject, message string) string {
	if utf8.RuneCountInString(subject) > maxSubjectLen {
		return "subject is too long (max 300 characters)"
	}
	if strings.TrimSpace(message) == "" {
		return "message is required"
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "message is too long (max 5,000 characters)"
	}
	return ""
}
