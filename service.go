package docsign

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Service orchestrates the sanitize, render, and sign operations.
// Construct one explicitly with New and pass it where needed; there are no
// package-level singletons. Every method is a self-contained call, so a
// single Service is safe for concurrent use.
type Service struct {
	cfg       serviceConfig
	sanitizer *Sanitizer
	validator *Validator
	markdown  markdownConverter
	converter pdfConverter
	signer    *Signer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStrict).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.logger == nil {
		s.cfg.logger = slog.Default()
	}

	s.sanitizer = NewSanitizer()
	s.validator = NewValidator(s.sanitizer)
	s.markdown = newGoldmarkConverter()
	s.signer = NewSigner(s.cfg.logger)

	// Create PDF converter if not injected (e.g., by tests)
	if s.converter == nil {
		s.converter = newRodConverter(s.cfg.timeout, s.cfg.logger)
	}

	return s
}

// Sanitize filters HTML through the allow-list and returns the cleaned
// markup. See Sanitizer.Sanitize for the filtering rules.
func (s *Service) Sanitize(htmlContent string, opts SanitizeOptions) (string, error) {
	return s.sanitizer.Sanitize(htmlContent, opts)
}

// Validate dry-runs sanitization and reports would-be violations without
// producing sanitized output. Intended as a pre-flight check on editor
// content.
func (s *Service) Validate(htmlContent string) (ValidationResult, error) {
	return s.validator.Validate(htmlContent)
}

// MarkdownToHTML converts pasted Markdown to an HTML fragment. The result
// still passes through sanitization when rendered.
func (s *Service) MarkdownToHTML(ctx context.Context, markdown string) (string, error) {
	return s.markdown.ToHTML(ctx, markdown)
}

// Render sanitizes htmlContent, wraps it in a printable document shell,
// and prints it to PDF via headless Chrome. A nil page uses the defaults
// (A4, portrait, 20mm margins).
//
// In strict mode (WithStrict) any sanitization violation aborts the render;
// otherwise violations are logged and the cleaned content is rendered.
func (s *Service) Render(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return nil, ErrEmptyHTML
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	sanitized, err := s.sanitizer.Sanitize(htmlContent, SanitizeOptions{
		Strict: s.cfg.strict,
		OnViolation: func(v Violation) {
			s.cfg.logger.Warn("sanitization violation", "detail", v.String())
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sanitizing: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	shell, err := buildDocumentShell(sanitized, page)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := s.converter.ToPDF(ctx, shell, page)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}

	return pdfBytes, nil
}

// Sign stamps the given placements and overlays onto pdfBytes and marks
// the document as signed. See Signer.Sign for the best-effort semantics
// around out-of-range pages.
func (s *Service) Sign(ctx context.Context, pdfBytes []byte, placements []SignaturePlacement, overlays map[int]string) (*SignResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.signer.Sign(pdfBytes, placements, overlays)
}
