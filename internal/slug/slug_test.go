// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import "testing"

// TestGenerate exercises the slug generator with typical catalog names,
// punctuation, accents, and boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal names ---
		{name: "simple two words", input: "Hello World", want: "hello-world"},
		{name: "name with year", input: "Pumps 2026", want: "pumps-2026"},
		{name: "single word", input: "Valves", want: "valves"},
		{name: "already a slug", input: "steel-pipes", want: "steel-pipes"},

		// --- Non-alphanumeric runs become one hyphen ---
		{name: "punctuation marks", input: "Hello, World! How's it going?", want: "hello-world-how-s-it-going"},
		{name: "ampersand", input: "Cables & Connectors", want: "cables-connectors"},
		{name: "parentheses and brackets", input: "Version (2.0) [Beta]", want: "version-2-0-beta"},
		{name: "slashes and pipes", input: "Frontend/Backend | Full Stack", want: "frontend-backend-full-stack"},
		{name: "dimensions", input: "Pipe 10x20mm", want: "pipe-10x20mm"},
		{name: "underscores", input: "snake_case_name", want: "snake-case-name"},
		{name: "tabs and newlines", input: "hello\tworld\nagain", want: "hello-world-again"},
		{name: "multiple spaces", input: "hello    world", want: "hello-world"},
		{name: "multiple hyphens", input: "hello---world", want: "hello-world"},
		{name: "mixed separators", input: "  --hello -- world--  ", want: "hello-world"},

		// --- Accents are folded ---
		{name: "french accents", input: "Câbles Électriques", want: "cables-electriques"},
		{name: "german umlauts", input: "Über die Brücke", want: "uber-die-brucke"},
		{name: "spanish tilde", input: "Señal Año", want: "senal-ano"},
		{name: "non-latin script dropped", input: "Pumps 水泵", want: "pumps"},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "     ", want: ""},
		{name: "only hyphens", input: "-----", want: ""},
		{name: "only special characters", input: "!@#$%^&*()", want: ""},
		{name: "single character", input: "A", want: "a"},
		{name: "single number", input: "5", want: "5"},
		{name: "date-like string", input: "2026-02-25", want: "2026-02-25"},
		{name: "leading and trailing symbols", input: "**Sale**", want: "sale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that a generated slug maps to itself.
func TestGenerate_Idempotent(t *testing.T) {
	inputs := []string{
		"Industrial Pumps & Valves",
		"Câbles Électriques",
		"a",
		"123",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := Generate(input)
			twice := Generate(once)
			if once != twice {
				t.Errorf("Generate(Generate(%q)) = %q, want %q", input, twice, once)
			}
		})
	}
}

// TestGenerate_ConsistentCase verifies that slugs are always lowercase
// regardless of input casing.
func TestGenerate_ConsistentCase(t *testing.T) {
	inputs := []string{
		"HELLO WORLD",
		"Hello World",
		"hElLo WoRlD",
		"hello world",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := Generate(input)
			if got != "hello-world" {
				t.Errorf("Generate(%q) = %q, want %q", input, got, "hello-world")
			}
		})
	}
}
