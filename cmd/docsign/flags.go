package main

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// CLI usage errors.
var (
	ErrNoCommand      = errors.New("no command given (expected render, sign, or validate)")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoInput        = errors.New("no input file given")
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	command string
	input   string

	output     string
	configPath string
	verbose    bool

	// render
	format      string
	orientation string
	margin      float64
	timeoutSecs int
	strict      bool
	markdown    bool

	// sign
	placementsPath string
}

const usageText = `Usage: docsign <command> [flags] <input>

Commands:
  render    Render an HTML (or Markdown) document to a paginated PDF
  sign      Stamp signature images onto an existing PDF
  validate  Report sanitization violations for an HTML document

Run 'docsign <command> --help' for command flags.`

// parseFlags parses os.Args into cliFlags.
func parseFlags(args []string) (*cliFlags, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w\n\n%s", ErrNoCommand, usageText)
	}

	f := &cliFlags{command: args[1]}

	fs := flag.NewFlagSet("docsign "+f.command, flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file path")
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML config file with defaults")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose logging")

	switch f.command {
	case "render":
		fs.StringVar(&f.format, "format", "", "page format: a4, letter, legal")
		fs.StringVar(&f.orientation, "orientation", "", "portrait or landscape")
		fs.Float64Var(&f.margin, "margin", -1, "page margin in millimeters (all sides)")
		fs.IntVar(&f.timeoutSecs, "timeout", 0, "render timeout in seconds")
		fs.BoolVar(&f.strict, "strict", false, "fail when sanitization strips anything")
		fs.BoolVar(&f.markdown, "markdown", false, "treat input as Markdown (implied by .md extension)")
	case "sign":
		fs.StringVar(&f.placementsPath, "placements", "", "YAML file describing signature placements and overlays")
	case "validate":
		// only common flags
	case "help", "--help", "-h":
		return nil, errors.New(usageText)
	default:
		return nil, fmt.Errorf("%w: %q\n\n%s", ErrUnknownCommand, f.command, usageText)
	}

	if err := fs.Parse(args[2:]); err != nil {
		return nil, err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoInput, f.command)
	}
	f.input = rest[0]

	if f.command == "render" && strings.HasSuffix(strings.ToLower(f.input), ".md") {
		f.markdown = true
	}

	return f, nil
}
