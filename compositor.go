package docsign

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/docsign-io/docsign/internal/fileutil"
)

// Metadata written to mark a document as signed. The title marker is the
// sole observable indicator that signing occurred; no cryptographic
// signature is produced.
const (
	SignedTitle = "Signed Document"
	pdfProducer = "docsign"
)

// dataURLPrefix is stripped from PNG payloads arriving as data: URLs.
const dataURLPrefix = "data:image/png;base64,"

// signatureImage is a decoded PNG payload with its pixel dimensions.
type signatureImage struct {
	data     []byte
	widthPx  int
	heightPx int
}

// stampEngine abstracts the PDF mutation backend to enable testing without
// real PDF documents.
type stampEngine interface {
	// PageCount parses the document and returns its page count.
	PageCount(pdf []byte) (int, error)
	// StampImage draws img at (x, y) in bottom-left-origin page space,
	// scaled to the requested width in points.
	StampImage(pdf []byte, page int, img signatureImage, x, y, width float64) ([]byte, error)
	// StampOverlay draws img spanning the page's full media box.
	StampOverlay(pdf []byte, page int, img signatureImage) ([]byte, error)
	// SetMetadata replaces the document info dictionary.
	SetMetadata(pdf []byte, title, producer string, modified time.Time) ([]byte, error)
}

// Compile-time interface check
var _ stampEngine = (*pdfcpuEngine)(nil)

// Signer embeds signature images and page overlays into existing PDFs.
// The PDF object graph is built per call and released when the call
// returns; a Signer carries no per-document state and is safe for
// concurrent use.
type Signer struct {
	engine stampEngine
	logger *slog.Logger
	now    func() time.Time
}

// NewSigner creates a Signer backed by pdfcpu.
// A nil logger falls back to slog.Default().
func NewSigner(logger *slog.Logger) *Signer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Signer{
		engine: newPdfcpuEngine(),
		logger: logger,
		now:    time.Now,
	}
}

// Sign stamps each placement and overlay onto the document and marks it as
// signed via the info dictionary (title, producer, modification date).
//
// Both stamping phases are best-effort across page bounds: a placement or
// overlay referencing a page the document does not have is skipped,
// recorded in SignResult.Skipped, and logged as a warning. Everything else
// is fatal: unparseable input returns ErrMalformedPDF, and a corrupt image
// payload anywhere fails the whole call with ErrSigning, since a partially
// signed document must never be mistaken for a fully signed one.
func (s *Signer) Sign(pdfBytes []byte, placements []SignaturePlacement, overlays map[int]string) (*SignResult, error) {
	for _, p := range placements {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	pageCount, err := s.engine.PageCount(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}

	result := &SignResult{}
	current := pdfBytes

	for _, p := range placements {
		if p.Page > pageCount {
			s.skip(result, p.Page, pageCount, "placement")
			continue
		}

		img, err := decodeSignatureImage(p.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("%w: placement on page %d: %v", ErrSigning, p.Page, err)
		}
		s.warnAspectMismatch(p, img)

		current, err = s.engine.StampImage(current, p.Page, img, p.X, p.Y, p.Width)
		if err != nil {
			return nil, fmt.Errorf("%w: placement on page %d: %v", ErrSigning, p.Page, err)
		}
	}

	for _, page := range sortedPages(overlays) {
		if page < 1 || page > pageCount {
			s.skip(result, page, pageCount, "overlay")
			continue
		}

		img, err := decodeSignatureImage(overlays[page])
		if err != nil {
			return nil, fmt.Errorf("%w: overlay on page %d: %v", ErrSigning, page, err)
		}

		current, err = s.engine.StampOverlay(current, page, img)
		if err != nil {
			return nil, fmt.Errorf("%w: overlay on page %d: %v", ErrSigning, page, err)
		}
	}

	current, err = s.engine.SetMetadata(current, SignedTitle, pdfProducer, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: writing metadata: %v", ErrSigning, err)
	}

	result.PDF = current
	return result, nil
}

// skip records and logs one out-of-range page reference.
func (s *Signer) skip(result *SignResult, page, pageCount int, kind string) {
	reason := fmt.Sprintf("page %d out of range (document has %d pages)", page, pageCount)
	result.Skipped = append(result.Skipped, SkippedPlacement{Page: page, Reason: reason})
	s.logger.Warn("skipping "+kind, "page", page, "pages", pageCount)
}

// warnAspectMismatch logs when the placement box and the PNG disagree on
// aspect ratio. The stamp keeps the image's own ratio, scaled to the
// requested width, so a mismatch means the drawn height deviates from the
// requested one.
func (s *Signer) warnAspectMismatch(p SignaturePlacement, img signatureImage) {
	if p.Width <= 0 || p.Height <= 0 || img.widthPx == 0 || img.heightPx == 0 {
		return
	}
	boxRatio := p.Width / p.Height
	imgRatio := float64(img.widthPx) / float64(img.heightPx)
	if diff := boxRatio/imgRatio - 1; diff > 0.01 || diff < -0.01 {
		s.logger.Warn("placement aspect ratio differs from image",
			"page", p.Page, "box", boxRatio, "image", imgRatio)
	}
}

// sortedPages returns the overlay page numbers in ascending order so
// stamping is deterministic.
func sortedPages(overlays map[int]string) []int {
	pages := make([]int, 0, len(overlays))
	for page := range overlays {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}

// decodeSignatureImage decodes a base64 PNG payload, accepting both raw
// base64 and data:image/png;base64, URLs, and verifies the PNG header.
func decodeSignatureImage(payload string) (signatureImage, error) {
	payload = strings.TrimSpace(payload)
	payload = strings.TrimPrefix(payload, dataURLPrefix)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return signatureImage{}, fmt.Errorf("decoding base64: %v", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return signatureImage{}, fmt.Errorf("decoding PNG: %v", err)
	}

	return signatureImage{data: data, widthPx: cfg.Width, heightPx: cfg.Height}, nil
}

// pdfcpuEngine implements stampEngine on pdfcpu. Images are stamped as
// on-top image watermarks with absolute bottom-left offsets.
type pdfcpuEngine struct {
	conf *model.Configuration
}

func newPdfcpuEngine() *pdfcpuEngine {
	return &pdfcpuEngine{conf: model.NewDefaultConfiguration()}
}

// PageCount parses and validates the document.
func (e *pdfcpuEngine) PageCount(pdf []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), e.conf)
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

// StampImage draws the image anchored at the page's bottom-left corner,
// offset by (x, y) points and scaled so its width matches width points.
// One pixel renders as one point at scale 1, so the absolute scale factor
// is width divided by the pixel width.
func (e *pdfcpuEngine) StampImage(pdf []byte, page int, img signatureImage, x, y, width float64) ([]byte, error) {
	scale := 1.0
	if img.widthPx > 0 && width > 0 {
		scale = width / float64(img.widthPx)
	}

	desc := fmt.Sprintf("pos:bl, scale:%.4f abs, rot:0, op:1", scale)
	wm, err := e.imageWatermark(img, desc)
	if err != nil {
		return nil, err
	}
	wm.Dx = x
	wm.Dy = y

	return e.addWatermark(pdf, page, wm)
}

// StampOverlay draws the image over the page's full media box. Full-page
// positioning stretches to the page bounds regardless of the image's own
// pixel aspect ratio.
func (e *pdfcpuEngine) StampOverlay(pdf []byte, page int, img signatureImage) ([]byte, error) {
	wm, err := e.imageWatermark(img, "pos:full, rot:0, op:1")
	if err != nil {
		return nil, err
	}
	return e.addWatermark(pdf, page, wm)
}

// imageWatermark builds an on-top image watermark from decoded PNG bytes.
// pdfcpu reads the image from a file, so the bytes take a round trip
// through a temp file that is removed before returning.
func (e *pdfcpuEngine) imageWatermark(img signatureImage, desc string) (*model.Watermark, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(img.data, "png")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return pdfcpu.ParseImageWatermarkDetails(tmpPath, desc, true, types.POINTS)
}

// addWatermark applies the watermark to a single page and returns the
// rewritten document.
func (e *pdfcpuEngine) addWatermark(pdf []byte, page int, wm *model.Watermark) ([]byte, error) {
	var buf bytes.Buffer
	pages := []string{strconv.Itoa(page)}
	if err := api.AddWatermarks(bytes.NewReader(pdf), &buf, pages, wm, e.conf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SetMetadata replaces the info dictionary with the signed-document
// marker fields.
func (e *pdfcpuEngine) SetMetadata(pdf []byte, title, producer string, modified time.Time) ([]byte, error) {
	ctx, err := api.ReadContext(bytes.NewReader(pdf), e.conf)
	if err != nil {
		return nil, err
	}

	info := types.Dict(map[string]types.Object{
		"Title":    types.StringLiteral(title),
		"Producer": types.StringLiteral(producer),
		"ModDate":  types.StringLiteral(pdfDate(modified)),
	})
	ir, err := ctx.IndRefForNewObject(info)
	if err != nil {
		return nil, err
	}
	ctx.Info = ir

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pdfDate renders a time as a PDF date string (always UTC).
func pdfDate(t time.Time) string {
	return t.UTC().Format("D:20060102150405Z")
}
