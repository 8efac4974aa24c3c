package docsign

// Notes:
// - PageSettings.Validate is nil-tolerant (nil means defaults), so the nil
//   case is part of the contract, not an edge case.
// - WithTimeout panics on non-positive durations; the panic is asserted via
//   recover since it flags a programmer error, not a runtime condition.

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestPageSettingsValidate - Page geometry validation
// ---------------------------------------------------------------------------

func TestPageSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{
			name:    "nil settings valid",
			page:    nil,
			wantErr: nil,
		},
		{
			name:    "defaults valid",
			page:    DefaultPageSettings(),
			wantErr: nil,
		},
		{
			name:    "letter landscape valid",
			page:    &PageSettings{Format: FormatLetter, Orientation: OrientationLandscape, Margins: UniformMargins(10)},
			wantErr: nil,
		},
		{
			name:    "legal valid",
			page:    &PageSettings{Format: FormatLegal, Orientation: OrientationPortrait, Margins: UniformMargins(0)},
			wantErr: nil,
		},
		{
			name:    "uppercase format valid",
			page:    &PageSettings{Format: "A4", Orientation: "Portrait", Margins: UniformMargins(20)},
			wantErr: nil,
		},
		{
			name:    "unknown format",
			page:    &PageSettings{Format: "a5", Orientation: OrientationPortrait},
			wantErr: ErrInvalidPageFormat,
		},
		{
			name:    "empty format",
			page:    &PageSettings{Orientation: OrientationPortrait},
			wantErr: ErrInvalidPageFormat,
		},
		{
			name:    "unknown orientation",
			page:    &PageSettings{Format: FormatA4, Orientation: "diagonal"},
			wantErr: ErrInvalidOrientation,
		},
		{
			name:    "negative margin",
			page:    &PageSettings{Format: FormatA4, Orientation: OrientationPortrait, Margins: Margins{Top: -1}},
			wantErr: ErrInvalidMargin,
		},
		{
			name:    "margin above maximum",
			page:    &PageSettings{Format: FormatA4, Orientation: OrientationPortrait, Margins: Margins{Left: 101}},
			wantErr: ErrInvalidMargin,
		},
		{
			name:    "margin at maximum valid",
			page:    &PageSettings{Format: FormatA4, Orientation: OrientationPortrait, Margins: UniformMargins(100)},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPaperSizeMM - Dimension lookup with orientation
// ---------------------------------------------------------------------------

func TestPaperSizeMM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       *PageSettings
		wantWidth  float64
		wantHeight float64
	}{
		{"nil defaults to a4 portrait", nil, 210, 297},
		{"a4 portrait", &PageSettings{Format: FormatA4, Orientation: OrientationPortrait}, 210, 297},
		{"a4 landscape swaps", &PageSettings{Format: FormatA4, Orientation: OrientationLandscape}, 297, 210},
		{"letter portrait", &PageSettings{Format: FormatLetter}, 215.9, 279.4},
		{"legal landscape", &PageSettings{Format: FormatLegal, Orientation: OrientationLandscape}, 355.6, 215.9},
		{"unknown format falls back to a4", &PageSettings{Format: "bogus"}, 210, 297},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h := tt.page.paperSizeMM()
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("paperSizeMM() = (%v, %v), want (%v, %v)", w, h, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSignaturePlacementValidate - Structural placement checks
// ---------------------------------------------------------------------------

func TestSignaturePlacementValidate(t *testing.T) {
	t.Parallel()

	valid := SignaturePlacement{
		Page: 1, X: 10, Y: 20, Width: 120, Height: 40,
		ImageBase64: "aGVsbG8=",
	}

	tests := []struct {
		name    string
		mutate  func(*SignaturePlacement)
		wantErr error
	}{
		{"valid placement", func(*SignaturePlacement) {}, nil},
		{"zero page", func(p *SignaturePlacement) { p.Page = 0 }, ErrInvalidPlacement},
		{"negative page", func(p *SignaturePlacement) { p.Page = -3 }, ErrInvalidPlacement},
		{"negative x", func(p *SignaturePlacement) { p.X = -1 }, ErrInvalidPlacement},
		{"negative y", func(p *SignaturePlacement) { p.Y = -0.5 }, ErrInvalidPlacement},
		{"negative width", func(p *SignaturePlacement) { p.Width = -10 }, ErrInvalidPlacement},
		{"negative height", func(p *SignaturePlacement) { p.Height = -10 }, ErrInvalidPlacement},
		{"empty image", func(p *SignaturePlacement) { p.ImageBase64 = "" }, ErrInvalidImageData},
		{"whitespace image", func(p *SignaturePlacement) { p.ImageBase64 = "   " }, ErrInvalidImageData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := valid
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestViolationString - Report formatting
// ---------------------------------------------------------------------------

func TestViolationString(t *testing.T) {
	t.Parallel()

	tag := Violation{Kind: ViolationTag, Tag: "script"}
	if s := tag.String(); !strings.Contains(s, "script") {
		t.Errorf("tag violation %q does not name the tag", s)
	}

	attr := Violation{Kind: ViolationAttribute, Tag: "p", Attr: "onclick"}
	s := attr.String()
	if !strings.Contains(s, "onclick") || !strings.Contains(s, "p") {
		t.Errorf("attribute violation %q does not name attribute and tag", s)
	}
}

// ---------------------------------------------------------------------------
// TestWithTimeout - Option validation
// ---------------------------------------------------------------------------

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("positive duration applies", func(t *testing.T) {
		t.Parallel()
		s := New(WithTimeout(5 * time.Second))
		if s.cfg.timeout != 5*time.Second {
			t.Errorf("timeout = %v, want 5s", s.cfg.timeout)
		}
	})

	t.Run("zero duration panics", func(t *testing.T) {
		t.Parallel()
		defer func() {
			if recover() == nil {
				t.Error("WithTimeout(0) did not panic")
			}
		}()
		WithTimeout(0)
	})

	t.Run("negative duration panics", func(t *testing.T) {
		t.Parallel()
		defer func() {
			if recover() == nil {
				t.Error("WithTimeout(-1) did not panic")
			}
		}()
		WithTimeout(-time.Second)
	})
}

// ---------------------------------------------------------------------------
// TestUniformMargins
// ---------------------------------------------------------------------------

func TestUniformMargins(t *testing.T) {
	t.Parallel()

	m := UniformMargins(15)
	want := Margins{Top: 15, Right: 15, Bottom: 15, Left: 15}
	if m != want {
		t.Errorf("UniformMargins(15) = %+v, want %+v", m, want)
	}
}
