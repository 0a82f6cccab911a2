// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package web provides the embedded static assets (CSS, JS) of the
// storefront, served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree: the storefront
// stylesheet and the script that submits the contact and catalog forms.
//
//go:embed all:static
var StaticFS embed.FS
