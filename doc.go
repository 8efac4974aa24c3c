// Package docsign turns document HTML into sanitized semantic markup,
// renders it to a paginated PDF using headless Chrome, and stamps signature
// images onto existing PDFs.
//
// # Quick Start
//
// Create a service, render sanitized HTML, and close when done:
//
//	svc := docsign.New()
//
//	pdfBytes, err := svc.Render(ctx, "<h1>Contract</h1><p>Terms...</p>", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("contract.pdf", pdfBytes, 0644)
//
// Stamp a signature onto the result:
//
//	res, err := svc.Sign(ctx, pdfBytes, []docsign.SignaturePlacement{{
//	    Page:        1,
//	    X:           72,
//	    Y:           72,
//	    Width:       144,
//	    Height:      48,
//	    ImageBase64: pngBase64,
//	}}, nil)
//
// # Pipeline
//
// The processing stages are:
//
//  1. Sanitization: an allow-list filter over the parsed HTML tree removes
//     unsafe tags and attributes while preserving content, then normalizes
//     whitespace. Violations are reported per stripped construct; strict
//     mode turns any violation into a hard failure.
//  2. Rendering: the sanitized fragment is wrapped in a document shell
//     carrying print CSS (@page size and margins, page-break control) and
//     printed to PDF by headless Chrome (go-rod).
//  3. Signing: signature images and full-page overlays are stamped into the
//     PDF page tree (pdfcpu) and the document metadata is updated to mark
//     it as signed.
//
// Use Validate for a dry run that reports sanitization violations without
// producing output, e.g. as a pre-flight check on editor content.
//
// # Markdown Input
//
// Editor content pasted as Markdown can be converted first:
//
//	htmlContent, err := svc.MarkdownToHTML(ctx, "# Hello\n\nWorld")
//
// The converted HTML flows through the same sanitize-and-render pipeline.
//
// # Resources and Concurrency
//
// Every operation is a self-contained, stateless call. Render launches its
// own browser and closes it on every exit path; Sign builds its PDF object
// graph per call. Concurrent calls share no mutable state, so a single
// Service may be used from multiple goroutines.
//
// # Browser Requirements
//
// PDF rendering requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// For containers and CI environments, set ROD_BROWSER_BIN to a pre-installed
// binary; the sandbox is disabled automatically when CI=true.
package docsign
