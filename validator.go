package docsign

// Validator checks HTML against the sanitization schema without producing
// sanitized output.
type Validator struct {
	sanitizer *Sanitizer
}

// NewValidator creates a Validator backed by the given sanitizer.
// Passing nil uses a default Sanitizer.
func NewValidator(s *Sanitizer) *Validator {
	if s == nil {
		s = NewSanitizer()
	}
	return &Validator{sanitizer: s}
}

// Validate dry-runs sanitization and reports every construct that would be
// stripped, in document order. The input is never mutated or persisted;
// Valid is true exactly when sanitization would change nothing structurally.
func (v *Validator) Validate(htmlContent string) (ValidationResult, error) {
	var violations []string

	_, err := v.sanitizer.Sanitize(htmlContent, SanitizeOptions{
		OnViolation: func(viol Violation) {
			violations = append(violations, viol.String())
		},
	})
	if err != nil {
		return ValidationResult{}, err
	}

	return ValidationResult{
		Valid:      len(violations) == 0,
		Violations: violations,
	}, nil
}
