package docsign

// CanvasToPDF converts a rectangle's Y origin from a top-left-origin canvas
// coordinate space (y grows downward) to PDF page space (origin bottom-left,
// y grows upward):
//
//	pdfY = pageHeight - canvasY - rectHeight
//
// All values are PDF points. X coordinates need no conversion. A rectangle
// flush with the canvas's bottom-left corner maps to the page origin (0, 0).
//
// The compositor does not apply this transform itself: explicit placements
// are expected to arrive already in PDF page space.
func CanvasToPDF(canvasY, rectHeight, pageHeight float64) float64 {
	return pageHeight - canvasY - rectHeight
}
