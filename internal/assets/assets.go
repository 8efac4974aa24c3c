// Package assets provides the embedded CSS used to style rendered
// documents. Styles live under styles/ and are compiled into the binary.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

//go:embed styles/*
var styles embed.FS

// DefaultStyleName is the base document style applied to every render.
const DefaultStyleName = "document"

// LoadStyle loads an embedded CSS style by name.
// The name must not include the .css extension or path components.
func LoadStyle(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// validateName rejects names that could escape the styles directory.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
