package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	docsign "github.com/docsign-io/docsign"
	"github.com/docsign-io/docsign/internal/config"
	"github.com/docsign-io/docsign/internal/yamlutil"
)

// I/O errors surfaced by commands.
var (
	ErrReadInput       = errors.New("failed to read input file")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrNoPlacements    = errors.New("sign requires --placements")
	ErrDocumentInvalid = errors.New("document failed validation")
)

// run dispatches the parsed command line.
func run(flags *cliFlags) error {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	switch flags.command {
	case "render":
		return runRender(flags, cfg, logger)
	case "sign":
		return runSign(flags, cfg, logger)
	case "validate":
		return runValidate(flags, logger)
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, flags.command)
}

// newService builds the library service from config and flags.
func newService(flags *cliFlags, cfg *config.Config, logger *slog.Logger) *docsign.Service {
	opts := []docsign.Option{docsign.WithLogger(logger)}

	timeout := cfg.Render.TimeoutSeconds
	if flags.timeoutSecs > 0 {
		timeout = flags.timeoutSecs
	}
	if timeout > 0 {
		opts = append(opts, docsign.WithTimeout(time.Duration(timeout)*time.Second))
	}

	if flags.strict || cfg.Render.Strict {
		opts = append(opts, docsign.WithStrict())
	}

	return docsign.New(opts...)
}

// pageSettings merges config defaults with command-line overrides.
func pageSettings(flags *cliFlags, cfg *config.Config) *docsign.PageSettings {
	format := cfg.Page.Format
	if flags.format != "" {
		format = flags.format
	}
	orientation := cfg.Page.Orientation
	if flags.orientation != "" {
		orientation = flags.orientation
	}
	margin := cfg.Page.Margin
	if flags.margin >= 0 {
		margin = flags.margin
	}

	return &docsign.PageSettings{
		Format:      format,
		Orientation: orientation,
		Margins:     docsign.UniformMargins(margin),
	}
}

func runRender(flags *cliFlags, cfg *config.Config, logger *slog.Logger) error {
	content, err := os.ReadFile(flags.input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	svc := newService(flags, cfg, logger)
	ctx := context.Background()

	htmlContent := string(content)
	if flags.markdown {
		htmlContent, err = svc.MarkdownToHTML(ctx, htmlContent)
		if err != nil {
			return err
		}
	}

	pdfBytes, err := svc.Render(ctx, htmlContent, pageSettings(flags, cfg))
	if err != nil {
		return err
	}

	return writeOutput(outputPath(flags, cfg, ".pdf"), pdfBytes)
}

func runSign(flags *cliFlags, cfg *config.Config, logger *slog.Logger) error {
	if flags.placementsPath == "" {
		return ErrNoPlacements
	}

	pdfBytes, err := os.ReadFile(flags.input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	placements, overlays, err := loadPlacements(flags.placementsPath)
	if err != nil {
		return err
	}

	svc := newService(flags, cfg, logger)
	result, err := svc.Sign(context.Background(), pdfBytes, placements, overlays)
	if err != nil {
		return err
	}

	for _, skipped := range result.Skipped {
		fmt.Fprintf(os.Stderr, "warning: skipped %s\n", skipped.Reason)
	}

	out := flags.output
	if out == "" {
		base := strings.TrimSuffix(flags.input, filepath.Ext(flags.input))
		out = base + "-signed.pdf"
	}
	return writeOutput(out, result.PDF)
}

func runValidate(flags *cliFlags, logger *slog.Logger) error {
	content, err := os.ReadFile(flags.input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	result, err := docsign.NewValidator(nil).Validate(string(content))
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Println("valid")
		return nil
	}

	for _, v := range result.Violations {
		fmt.Println(v)
	}
	return fmt.Errorf("%w: %d violation(s)", ErrDocumentInvalid, len(result.Violations))
}

// placementsFile is the YAML schema for the sign command.
type placementsFile struct {
	Placements []placementEntry `yaml:"placements"`
	Overlays   []overlayEntry   `yaml:"overlays"`
}

type placementEntry struct {
	Page   int     `yaml:"page"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Image  string  `yaml:"image"` // PNG file path
}

type overlayEntry struct {
	Page  int    `yaml:"page"`
	Image string `yaml:"image"` // PNG file path
}

// loadPlacements reads the placements YAML and inlines the referenced PNG
// files as base64 payloads.
func loadPlacements(path string) ([]docsign.SignaturePlacement, map[int]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	var file placementsFile
	if err := yamlutil.UnmarshalStrict(data, &file); err != nil {
		return nil, nil, err
	}

	baseDir := filepath.Dir(path)

	placements := make([]docsign.SignaturePlacement, 0, len(file.Placements))
	for _, p := range file.Placements {
		payload, err := readImageBase64(baseDir, p.Image)
		if err != nil {
			return nil, nil, err
		}
		placements = append(placements, docsign.SignaturePlacement{
			Page:        p.Page,
			X:           p.X,
			Y:           p.Y,
			Width:       p.Width,
			Height:      p.Height,
			ImageBase64: payload,
		})
	}

	overlays := make(map[int]string, len(file.Overlays))
	for _, o := range file.Overlays {
		payload, err := readImageBase64(baseDir, o.Image)
		if err != nil {
			return nil, nil, err
		}
		overlays[o.Page] = payload
	}

	return placements, overlays, nil
}

// readImageBase64 reads a PNG (relative paths resolve against the
// placements file) and returns it base64-encoded.
func readImageBase64(baseDir, imagePath string) (string, error) {
	if imagePath != "" && !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(baseDir, imagePath)
	}
	data, err := os.ReadFile(imagePath) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// outputPath resolves the output file for render.
func outputPath(flags *cliFlags, cfg *config.Config, ext string) string {
	if flags.output != "" {
		return flags.output
	}

	base := strings.TrimSuffix(filepath.Base(flags.input), filepath.Ext(flags.input)) + ext
	if cfg.Output.Dir != "" {
		return filepath.Join(cfg.Output.Dir, base)
	}
	return filepath.Join(filepath.Dir(flags.input), base)
}

// writeOutput writes the result file with conservative permissions.
func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
