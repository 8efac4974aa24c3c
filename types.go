package docsign

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Page format constants.
const (
	FormatA4     = "a4"
	FormatLetter = "letter"
	FormatLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in millimeters.
const (
	MinMarginMM     = 0.0
	MaxMarginMM     = 100.0
	DefaultMarginMM = 20.0
)

// paperDimensionsMM maps page formats to portrait width/height in millimeters.
var paperDimensionsMM = map[string][2]float64{
	FormatA4:     {210, 297},
	FormatLetter: {215.9, 279.4},
	FormatLegal:  {215.9, 355.6},
}

// Margins holds page margins in millimeters.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargins returns margins with the same value on all sides.
func UniformMargins(mm float64) Margins {
	return Margins{Top: mm, Right: mm, Bottom: mm, Left: mm}
}

// PageSettings configures PDF page geometry for rendering.
type PageSettings struct {
	Format      string  // "a4", "letter", "legal"
	Orientation string  // "portrait", "landscape"
	Margins     Margins // millimeters
}

// DefaultPageSettings returns page settings with default values:
// A4, portrait, 20mm margins on all sides.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Format:      FormatA4,
		Orientation: OrientationPortrait,
		Margins:     UniformMargins(DefaultMarginMM),
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := paperDimensionsMM[strings.ToLower(p.Format)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageFormat, p.Format)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	sides := []struct {
		name  string
		value float64
	}{
		{"top", p.Margins.Top},
		{"right", p.Margins.Right},
		{"bottom", p.Margins.Bottom},
		{"left", p.Margins.Left},
	}
	for _, side := range sides {
		if side.value < MinMarginMM || side.value > MaxMarginMM {
			return fmt.Errorf("%w: %s %.2fmm (must be between %.0f and %.0f)",
				ErrInvalidMargin, side.name, side.value, MinMarginMM, MaxMarginMM)
		}
	}

	return nil
}

// paperSizeMM returns the page width and height in millimeters, with
// orientation applied. Falls back to A4 portrait for unknown formats;
// Validate catches those before rendering.
func (p *PageSettings) paperSizeMM() (width, height float64) {
	format := FormatA4
	orientation := OrientationPortrait
	if p != nil {
		if p.Format != "" {
			format = strings.ToLower(p.Format)
		}
		if p.Orientation != "" {
			orientation = strings.ToLower(p.Orientation)
		}
	}

	dims, ok := paperDimensionsMM[format]
	if !ok {
		dims = paperDimensionsMM[FormatA4]
	}

	if orientation == OrientationLandscape {
		return dims[1], dims[0]
	}
	return dims[0], dims[1]
}

// SignaturePlacement positions one signature image on a PDF page.
// Coordinates and dimensions are PDF points (1/72 inch) with the origin at
// the page's bottom-left corner. Callers holding coordinates from a
// top-left-origin canvas must convert the Y axis first, see CanvasToPDF.
type SignaturePlacement struct {
	Page        int     // 1-based page number
	X           float64 // points from the left page edge
	Y           float64 // points from the bottom page edge
	Width       float64 // points
	Height      float64 // points
	ImageBase64 string  // PNG payload, raw base64 or data:image/png;base64, URL
}

// Validate checks that the placement is structurally usable.
// Page bounds against the actual document are checked during signing.
func (sp SignaturePlacement) Validate() error {
	if sp.Page < 1 {
		return fmt.Errorf("%w: page %d (must be >= 1)", ErrInvalidPlacement, sp.Page)
	}
	if sp.X < 0 || sp.Y < 0 || sp.Width < 0 || sp.Height < 0 {
		return fmt.Errorf("%w: negative coordinates or dimensions", ErrInvalidPlacement)
	}
	if strings.TrimSpace(sp.ImageBase64) == "" {
		return fmt.Errorf("%w: empty image payload", ErrInvalidImageData)
	}
	return nil
}

// SkippedPlacement records a placement or overlay that referenced a page
// outside the document and was skipped during signing.
type SkippedPlacement struct {
	Page   int
	Reason string
}

// SignResult is the outcome of a signing operation. Skipped is non-empty
// when some placements referenced pages the document does not have; the
// operation still succeeds for the remaining placements.
type SignResult struct {
	PDF     []byte
	Skipped []SkippedPlacement
}

// ViolationKind distinguishes what kind of construct was stripped.
type ViolationKind string

// Violation kinds.
const (
	ViolationTag       ViolationKind = "tag"
	ViolationAttribute ViolationKind = "attribute"
)

// Violation describes one construct removed during sanitization.
type Violation struct {
	Kind ViolationKind
	Tag  string // owning tag
	Attr string // set for attribute violations
}

// String renders the violation for logs and validation reports.
func (v Violation) String() string {
	if v.Kind == ViolationAttribute {
		return fmt.Sprintf("disallowed attribute %q removed from <%s>", v.Attr, v.Tag)
	}
	return fmt.Sprintf("disallowed tag <%s> removed", v.Tag)
}

// SanitizeOptions configures a sanitization run.
type SanitizeOptions struct {
	// Strict makes the call fail with ErrStrictSanitization when any
	// disallowed construct was removed. No output is returned in that case.
	Strict bool

	// OnViolation, if set, is invoked once per stripped tag or attribute,
	// in document order.
	OnViolation func(Violation)
}

// ValidationResult reports the outcome of a dry-run validation.
type ValidationResult struct {
	Valid      bool
	Violations []string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	strict  bool
	logger  *slog.Logger
}

// defaultTimeout bounds one render call when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docsign: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithStrict makes the service reject input whose sanitization stripped
// anything, instead of proceeding with the cleaned output.
func WithStrict() Option {
	return func(s *Service) {
		s.cfg.strict = true
	}
}

// WithLogger sets the structured logger used for skip warnings and
// renderer lifecycle events. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.cfg.logger = l
	}
}
