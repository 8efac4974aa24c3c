package main

import (
	"errors"
	"os"

	docsign "github.com/docsign-io/docsign"
	"github.com/docsign-io/docsign/internal/config"
)

// Exit codes for the docsign CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitInvalid = 5 // Document failed validation
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Validation report (exit 5)
	if errors.Is(err, ErrDocumentInvalid) {
		return ExitInvalid
	}

	// Browser errors (exit 4)
	if errors.Is(err, docsign.ErrBrowserConnect) ||
		errors.Is(err, docsign.ErrPageCreate) ||
		errors.Is(err, docsign.ErrPageLoad) ||
		errors.Is(err, docsign.ErrRender) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, ErrNoCommand) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrNoPlacements) ||
		errors.Is(err, docsign.ErrEmptyHTML) ||
		errors.Is(err, docsign.ErrStrictSanitization) ||
		errors.Is(err, docsign.ErrInvalidPageFormat) ||
		errors.Is(err, docsign.ErrInvalidOrientation) ||
		errors.Is(err, docsign.ErrInvalidMargin) ||
		errors.Is(err, docsign.ErrInvalidPlacement) ||
		errors.Is(err, docsign.ErrInvalidImageData) ||
		errors.Is(err, docsign.ErrMalformedPDF) {
		return ExitUsage
	}

	return ExitGeneral
}
