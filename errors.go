package docsign

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyHTML          = errors.New("HTML content cannot be empty")
	ErrStrictSanitization = errors.New("sanitization removed disallowed content in strict mode")
	ErrMalformedPDF       = errors.New("input is not a loadable PDF")
	ErrSigning            = errors.New("signature embedding failed")
	ErrRender             = errors.New("PDF rendering failed")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")
	ErrMarkdownConversion = errors.New("markdown conversion failed")

	// Page setup validation errors.
	ErrInvalidPageFormat  = errors.New("invalid page format")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Placement validation errors.
	ErrInvalidPlacement = errors.New("invalid signature placement")
	ErrInvalidImageData = errors.New("invalid signature image data")
)
