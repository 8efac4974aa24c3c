package docsign

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sanitizer filters HTML through the tag/attribute allow-list and
// normalizes whitespace. The zero value is ready to use; all state lives
// in the per-call options, so one Sanitizer serves concurrent calls.
type Sanitizer struct{}

// NewSanitizer creates a Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize returns htmlContent restricted to the allowed vocabulary.
//
// Tags outside the allow-list are removed but their children are kept in
// place (content-preserving removal); script-like tags are removed together
// with their content. Disallowed attributes, style, on* handlers, and URLs
// with unlisted schemes are stripped. After filtering, runs of horizontal
// whitespace collapse to a single space, line endings are normalized, and
// paragraphs without renderable content are removed.
//
// Every stripped construct is reported through opts.OnViolation in document
// order. With opts.Strict, any violation fails the call with
// ErrStrictSanitization and no output is returned.
//
// Sanitizing already-clean input is the identity transform modulo
// whitespace normalization, so the operation is idempotent.
func (s *Sanitizer) Sanitize(htmlContent string, opts SanitizeOptions) (string, error) {
	if htmlContent == "" {
		return "", nil
	}

	root, err := parseHTML(htmlContent)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	violations := 0
	report := func(v Violation) {
		violations++
		if opts.OnViolation != nil {
			opts.OnViolation(v)
		}
	}

	filterNode(root, report)
	normalizeWhitespace(root)
	removeEmptyParagraphs(root)

	if opts.Strict && violations > 0 {
		return "", fmt.Errorf("%w: %d violation(s)", ErrStrictSanitization, violations)
	}

	return renderHTML(root)
}

// parseHTML parses HTML content, handling both full documents and fragments.
func parseHTML(content string) (*html.Node, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		return html.Parse(strings.NewReader(content))
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, nil
}

// renderHTML renders the filtered tree back to a string. Only the
// container's children are rendered: fragments stay fragments, and full
// documents reduce to their surviving fragment content because the
// structural tags were unwrapped during filtering.
func renderHTML(root *html.Node) (string, error) {
	var buf strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// filterNode applies the allow-list to all element children of n,
// recursively. n itself is assumed retained.
func filterNode(n *html.Node, report func(Violation)) {
	child := n.FirstChild
	for child != nil {
		next := child.NextSibling

		switch child.Type {
		case html.ElementNode:
			tag := child.Data

			switch {
			case tag == "head":
				// Document metadata: dropped with content, but not a
				// violation since full-document input is valid.
				n.RemoveChild(child)

			case dropContentTags[tag]:
				report(Violation{Kind: ViolationTag, Tag: tag})
				n.RemoveChild(child)

			case structuralTags[tag]:
				// Document scaffolding: unwrap silently, then continue
				// filtering from the hoisted children.
				next = unwrapNode(n, child)

			case !allowedTags[tag]:
				report(Violation{Kind: ViolationTag, Tag: tag})
				next = unwrapNode(n, child)

			default:
				filterAttributes(child, report)
				filterNode(child, report)
			}

		case html.CommentNode, html.DoctypeNode:
			// Comments and doctypes never survive; not reported as
			// violations since they carry no user content.
			n.RemoveChild(child)
		}

		child = next
	}
}

// unwrapNode removes child from parent while re-parenting its children in
// place. Returns the node filtering should continue from (the first hoisted
// child, or the old successor).
func unwrapNode(parent, child *html.Node) *html.Node {
	next := child.NextSibling
	first := child.FirstChild

	for gc := child.FirstChild; gc != nil; {
		gcNext := gc.NextSibling
		child.RemoveChild(gc)
		parent.InsertBefore(gc, child)
		gc = gcNext
	}
	parent.RemoveChild(child)

	if first != nil {
		return first
	}
	return next
}

// filterAttributes strips disallowed attributes from a retained element.
func filterAttributes(n *html.Node, report func(Violation)) {
	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		if attributeAllowed(n.Data, attr) {
			kept = append(kept, attr)
			continue
		}
		report(Violation{Kind: ViolationAttribute, Tag: n.Data, Attr: attr.Key})
	}
	n.Attr = kept
}

// attributeAllowed decides whether one attribute survives on the given tag.
func attributeAllowed(tag string, attr html.Attribute) bool {
	key := strings.ToLower(attr.Key)

	// Event handlers and inline styles are never allowed.
	if key == "style" || strings.HasPrefix(key, "on") {
		return false
	}

	allowed := wildcardAttrs[key]
	if perTag, ok := tagAttrs[tag]; ok && perTag[key] {
		allowed = true
	}
	if !allowed {
		return false
	}

	// URL-bearing attributes additionally pass a scheme check.
	if schemes, ok := urlAttrSchemes[tag][key]; ok {
		return urlSchemeAllowed(attr.Val, schemes)
	}
	return true
}

// urlSchemeAllowed reports whether the URL's scheme is in the allow-list.
// Scheme-less URLs (relative paths, anchors) pass; obfuscated schemes with
// embedded whitespace or control characters do not.
func urlSchemeAllowed(rawURL string, schemes map[string]bool) bool {
	trimmed := strings.TrimSpace(rawURL)

	// Protocol-relative URLs resolve to the page's scheme; treat as https.
	if strings.HasPrefix(trimmed, "//") {
		return schemes["https"]
	}

	colon := strings.IndexByte(trimmed, ':')
	if colon == -1 {
		return true
	}

	// A '/', '?' or '#' before the colon means the colon belongs to the
	// path or query, not a scheme.
	if i := strings.IndexAny(trimmed, "/?#"); i != -1 && i < colon {
		return true
	}

	scheme := trimmed[:colon]
	for _, r := range scheme {
		// Control characters or whitespace inside the scheme are an
		// obfuscation attempt (e.g. "java\tscript:").
		if r <= ' ' {
			return false
		}
	}
	return schemes[strings.ToLower(scheme)]
}

// normalizeWhitespace collapses runs of horizontal whitespace in text nodes
// to a single space and normalizes CRLF/CR line endings.
func normalizeWhitespace(n *html.Node) {
	if n.Type == html.TextNode {
		if !insidePreformatted(n) {
			n.Data = collapseSpaces(n.Data)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		normalizeWhitespace(c)
	}
}

// insidePreformatted reports whether a text node sits under <pre>, where
// whitespace is significant.
func insidePreformatted(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "pre" {
			return true
		}
	}
	return false
}

// collapseSpaces normalizes line endings and collapses runs of spaces and
// tabs to a single space. Leading/trailing single spaces are preserved.
func collapseSpaces(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// removeEmptyParagraphs deletes <p> elements whose rendered text content is
// empty or whitespace-only and which contain nothing else that renders.
func removeEmptyParagraphs(n *html.Node) {
	child := n.FirstChild
	for child != nil {
		next := child.NextSibling

		if child.Type == html.ElementNode {
			if child.Data == "p" && !hasRenderableContent(child) {
				n.RemoveChild(child)
			} else {
				removeEmptyParagraphs(child)
			}
		}

		child = next
	}
}

// hasRenderableContent reports whether the subtree contains non-whitespace
// text or an element that renders without text (currently images).
func hasRenderableContent(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return true
			}
		case html.ElementNode:
			if c.Data == "img" {
				return true
			}
			if hasRenderableContent(c) {
				return true
			}
		}
	}
	return false
}
