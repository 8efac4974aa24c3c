package docsign

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/docsign-io/docsign/internal/fileutil"
)

// pdfMagic is the signature every well-formed PDF stream starts with.
var pdfMagic = []byte("%PDF-")

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error)
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing
// without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error)
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// rodRenderer implements pdfRenderer using go-rod. Every call launches its
// own headless Chrome and tears it down on all exit paths: render calls are
// isolated from each other and a crashed browser cannot poison later calls.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	timeout time.Duration
	logger  *slog.Logger
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration, logger *slog.Logger) *rodRenderer {
	return &rodRenderer{timeout: timeout, logger: logger}
}

// launchBrowser starts a headless Chrome instance and connects to it.
// The returned cleanup kills the browser process tree.
func (r *rodRenderer) launchBrowser() (*rod.Browser, func(), error) {
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	cleanup := func() {
		// Close may hang or fail on a crashed browser; Kill reaps the
		// process either way.
		_ = browser.Close()
		l.Kill()
	}
	return browser, cleanup, nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it
// to PDF. The page's own @page rules (size, margins) take precedence over
// Chrome's defaults. A timeout or crashed renderer returns ErrRender;
// truncated output is never returned.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error) {
	// Check context before paying the browser launch cost
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, cleanup, err := r.launchBrowser()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	tab, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer tab.Close()

	// Hard timeout from context deadline or configured default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	tab = tab.Timeout(timeout)

	if err := tab.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	// Wait for content to settle (data: images, web fonts) before printing.
	if err := tab.WaitIdle(timeout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := tab.PDF(buildPrintOptions(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRender, err)
	}

	if !bytes.HasPrefix(pdfBuf, pdfMagic) {
		return nil, fmt.Errorf("%w: renderer produced non-PDF output", ErrRender)
	}

	r.logger.Debug("rendered PDF", "bytes", len(pdfBuf))
	return pdfBuf, nil
}

// buildPrintOptions constructs proto.PagePrintToPDF. Geometry is not set
// here: the document shell carries an @page rule, and PreferCSSPageSize
// makes Chrome honor it over its own paper defaults.
func buildPrintOptions(page *PageSettings) *proto.PagePrintToPDF {
	widthMM, heightMM := page.paperSizeMM()

	return &proto.PagePrintToPDF{
		// Fallback paper size for agents ignoring @page; CSS wins when
		// PreferCSSPageSize is set.
		PaperWidth:        floatPtr(mmToInches(widthMM)),
		PaperHeight:       floatPtr(mmToInches(heightMM)),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

// mmToInches converts millimeters to inches (Chrome's print unit).
func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
}

// newRodConverter creates a rodConverter with the production renderer.
func newRodConverter(timeout time.Duration, logger *slog.Logger) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(timeout, logger),
	}
}

// ToPDF converts HTML content to PDF bytes using headless Chrome. The
// content is handed to the browser through a temp file removed afterwards.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error) {
	tmpPath, tmpCleanup, err := fileutil.WriteTempFile([]byte(htmlContent), "html")
	if err != nil {
		return nil, err
	}
	defer tmpCleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, page)
}
