package docsign

import (
	"fmt"

	"github.com/docsign-io/docsign/internal/assets"
)

// documentShell wraps a sanitized fragment in a complete HTML5 document
// carrying the combined print CSS. Chrome prints this shell, honoring the
// embedded @page rule.
const documentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Document</title>
<style>
%s
</style>
</head>
<body>
%s
</body>
</html>`

// buildDocumentShell assembles the printable document: the base style,
// page geometry from settings, pagination rules, and the sanitized
// fragment. The CSS is escaped so it cannot terminate the style block.
func buildDocumentShell(fragment string, page *PageSettings) (string, error) {
	baseCSS, err := assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return "", fmt.Errorf("loading base style: %w", err)
	}

	css := baseCSS + buildPageCSS(page) + buildPaginationCSS()
	return fmt.Sprintf(documentShell, sanitizeCSS(css), fragment), nil
}
