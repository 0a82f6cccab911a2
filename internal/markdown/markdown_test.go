// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis",
			source:   "PVC insulated cable for **fixed installation**.",
			contains: []string{"<strong>fixed installation</strong>"},
		},
		{
			name:     "gfm table",
			source:   "| Key | Value |\n|-----|-------|\n| Power | 150 W |\n",
			contains: []string{"<table>", "<td>150 W</td>"},
		},
		{
			name:     "raw html is not passed through",
			source:   "Hello <script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
		{
			name:     "fenced snippet highlighted inline",
			source:   "```yaml\nvoltage: 230\n```\n",
			contains: []string{"<pre", "style=", "voltage"},
		},
		{
			name:     "hard wraps",
			source:   "line one\nline two",
			contains: []string{"<br>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output %q should contain %q", out, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(out, bad) {
					t.Errorf("output %q should not contain %q", out, bad)
				}
			}
		})
	}
}

func TestHTML(t *testing.T) {
	got := string(HTML("*italic*"))
	if !strings.Contains(got, "<em>italic</em>") {
		t.Errorf("HTML = %q", got)
	}
	if HTML("") != "" {
		t.Errorf("HTML(\"\") = %q, want empty", HTML(""))
	}
}
