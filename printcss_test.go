package docsign

// Notes:
// - buildPageCSS output feeds Chrome verbatim, so assertions check the
//   @page rule text rather than parsing CSS.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestBuildPageCSS - @page rule generation
// ---------------------------------------------------------------------------

func TestBuildPageCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		page     *PageSettings
		contains []string
	}{
		{
			name:     "nil uses defaults",
			page:     nil,
			contains: []string{"@page", "size: A4 portrait;", "margin: 20.00mm 20.00mm 20.00mm 20.00mm;"},
		},
		{
			name: "letter landscape",
			page: &PageSettings{Format: FormatLetter, Orientation: OrientationLandscape, Margins: UniformMargins(10)},
			contains: []string{
				"size: letter landscape;",
				"margin: 10.00mm 10.00mm 10.00mm 10.00mm;",
			},
		},
		{
			name: "per-side margins in top right bottom left order",
			page: &PageSettings{
				Format:      FormatLegal,
				Orientation: OrientationPortrait,
				Margins:     Margins{Top: 1, Right: 2, Bottom: 3, Left: 4},
			},
			contains: []string{
				"size: legal portrait;",
				"margin: 1.00mm 2.00mm 3.00mm 4.00mm;",
			},
		},
		{
			name:     "uppercase format normalized",
			page:     &PageSettings{Format: "A4", Orientation: "LANDSCAPE", Margins: UniformMargins(5)},
			contains: []string{"size: A4 landscape;"},
		},
		{
			name:     "unknown format falls back to a4",
			page:     &PageSettings{Format: "tabloid"},
			contains: []string{"size: A4 portrait;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			css := buildPageCSS(tt.page)
			for _, want := range tt.contains {
				if !strings.Contains(css, want) {
					t.Errorf("buildPageCSS() missing %q in:\n%s", want, css)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildPaginationCSS - Page break control rules
// ---------------------------------------------------------------------------

func TestBuildPaginationCSS(t *testing.T) {
	t.Parallel()

	css := buildPaginationCSS()

	wantRules := []string{
		"break-inside: avoid;",
		"page-break-inside: avoid;",
		"break-after: avoid;",
		"orphans: 3;",
		"widows: 3;",
	}
	for _, rule := range wantRules {
		if !strings.Contains(css, rule) {
			t.Errorf("pagination CSS missing %q", rule)
		}
	}

	// Blocks that must not split across pages
	for _, sel := range []string{"p", "tr", "img", "table", "figure", "blockquote", "pre"} {
		if !strings.Contains(css, sel) {
			t.Errorf("pagination CSS missing selector %q", sel)
		}
	}

	// Headings keep their following content
	if !strings.Contains(css, "h1, h2, h3, h4, h5, h6") {
		t.Error("pagination CSS missing heading selector group")
	}
}

// ---------------------------------------------------------------------------
// TestSanitizeCSS - Style block escape
// ---------------------------------------------------------------------------

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain css untouched", "p { color: black; }", "p { color: black; }"},
		{"closing tag escaped", `x{}</style><script>`, `x{}<\/style><script>`},
		{"multiple occurrences", "</a</b", `<\/a<\/b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
