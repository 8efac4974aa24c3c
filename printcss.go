package docsign

import (
	"fmt"
	"strings"
)

// Orphan/widow control defaults for paragraph-level elements.
const (
	defaultOrphans = 3
	defaultWidows  = 3
)

// cssPageSizeKeywords maps page formats to the CSS @page size keyword.
var cssPageSizeKeywords = map[string]string{
	FormatA4:     "A4",
	FormatLetter: "letter",
	FormatLegal:  "legal",
}

// buildPageCSS encodes page settings as the browser's native @page rule.
// Chrome honors it during printing when preferCSSPageSize is set.
func buildPageCSS(p *PageSettings) string {
	format := FormatA4
	orientation := OrientationPortrait
	margins := UniformMargins(DefaultMarginMM)
	if p != nil {
		if p.Format != "" {
			format = strings.ToLower(p.Format)
		}
		if p.Orientation != "" {
			orientation = strings.ToLower(p.Orientation)
		}
		margins = p.Margins
	}

	keyword, ok := cssPageSizeKeywords[format]
	if !ok {
		keyword = cssPageSizeKeywords[FormatA4]
	}

	return fmt.Sprintf(`
/* Page geometry */
@page {
  size: %s %s;
  margin: %.2fmm %.2fmm %.2fmm %.2fmm;
}
`, keyword, orientation, margins.Top, margins.Right, margins.Bottom, margins.Left)
}

// buildPaginationCSS generates page-break control rules: block-level
// elements avoid being split across page boundaries, and headings stay
// with the content that follows them.
func buildPaginationCSS() string {
	var buf strings.Builder

	buf.WriteString(`
/* Pagination: keep blocks intact across page boundaries */
p, tr, img, table, figure, blockquote, pre, ul, ol {
  break-inside: avoid;
  page-break-inside: avoid;
}
`)

	buf.WriteString(`
/* Pagination: headings stay with the content below them */
h1, h2, h3, h4, h5, h6 {
  break-after: avoid;
  page-break-after: avoid;
  break-inside: avoid;
  page-break-inside: avoid;
}
`)

	buf.WriteString(fmt.Sprintf(`
/* Pagination: orphan/widow control */
p, li, dd, dt, blockquote {
  orphans: %d;
  widows: %d;
}
`, defaultOrphans, defaultWidows))

	return buf.String()
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
