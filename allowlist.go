package docsign

// The sanitization vocabulary. Filtering is allow-list based: a tag survives
// only if listed here, an attribute survives only if listed for its tag or
// in the wildcard set. Everything else is stripped and reported.

// allowedTags is the set of tags that survive sanitization.
var allowedTags = map[string]bool{
	// Text structure
	"p": true, "br": true, "hr": true, "div": true, "span": true,
	// Headings
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	// Lists
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	// Inline formatting
	"b": true, "i": true, "strong": true, "em": true, "u": true, "s": true,
	"del": true, "ins": true, "sub": true, "sup": true, "small": true,
	"mark": true, "abbr": true,
	// Quotes and code
	"blockquote": true, "pre": true, "code": true, "kbd": true,
	"samp": true, "var": true,
	// Media
	"a": true, "img": true, "figure": true, "figcaption": true,
	// Tables
	"table": true, "caption": true, "thead": true, "tbody": true,
	"tfoot": true, "tr": true, "th": true, "td": true,
	// Other semantic tags
	"address": true, "cite": true, "q": true, "time": true,
	"details": true, "summary": true,
}

// wildcardAttrs are allowed on every retained tag.
// "class" stays because the Markdown import emits chroma highlighting
// classes; "style" is never allowed.
var wildcardAttrs = map[string]bool{
	"id":    true,
	"class": true,
	"title": true,
	"lang":  true,
	"dir":   true,
}

// tagAttrs lists additional attributes allowed per tag.
var tagAttrs = map[string]map[string]bool{
	"a":    {"href": true, "target": true, "rel": true},
	"img":  {"src": true, "alt": true, "width": true, "height": true},
	"th":   {"colspan": true, "rowspan": true, "scope": true},
	"td":   {"colspan": true, "rowspan": true, "scope": true},
	"time": {"datetime": true},
	"ol":   {"start": true, "type": true},
}

// dropContentTags are removed together with their children. Unwrapping
// these would leak script source, style rules, or invisible text into the
// document body.
var dropContentTags = map[string]bool{
	"script":   true,
	"style":    true,
	"iframe":   true,
	"frame":    true,
	"frameset": true,
	"object":   true,
	"embed":    true,
	"applet":   true,
	"noscript": true,
	"title":    true,
	"textarea": true,
	"template": true,
}

// structuralTags are document scaffolding that is unwrapped without being
// reported: full-document input (<!DOCTYPE html><html><body>...) is valid,
// only its fragment content is kept.
var structuralTags = map[string]bool{
	"html": true,
	"body": true,
}

// URL scheme allow-lists. A URL without a scheme (relative path, anchor)
// passes; an explicit scheme must be listed.
var (
	linkSchemes  = map[string]bool{"http": true, "https": true, "mailto": true, "data": true}
	imageSchemes = map[string]bool{"http": true, "https": true, "data": true}
)

// urlAttrSchemes maps URL-bearing attributes to their scheme allow-list,
// keyed by tag.
var urlAttrSchemes = map[string]map[string]map[string]bool{
	"a":   {"href": linkSchemes},
	"img": {"src": imageSchemes},
}
