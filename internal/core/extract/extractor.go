// Package extract turns raw document bytes into plain text, one
// extractor per format variant, with a vision fallback for material that
// has no machine-readable text layer.
package extract

import (
	"context"
	"fmt"
	"io"
	"unicode"

	"github.com/adityakp-dev/Acadex/internal/core"
	"github.com/adityakp-dev/Acadex/internal/models"
)

// cellSeparator joins table/row cells in extracted text so tabular
// structure survives chunking and retrieval.
const cellSeparator = " | "

// Extractor converts one document variant to text.
type Extractor interface {
	Extract(ctx context.Context, mimeType string, data []byte) (string, error)
}

// Registry dispatches a document to the extractor for its format.
type Registry struct {
	byFormat map[models.Format]Extractor
}

// NewRegistry wires the per-format extractors. The fixed-layout PDF path
// is wrapped in the scanned-document fallback: when direct extraction
// yields fewer than scanThreshold non-whitespace characters the document
// is re-read through the vision provider.
func NewRegistry(vision core.VisionProvider, scanThreshold int) *Registry {
	visionEx := &VisionExtractor{provider: vision}
	return &Registry{
		byFormat: map[models.Format]Extractor{
			models.FormatPDF: &ScanFallback{
				Inner:     &PDFExtractor{},
				Vision:    visionEx,
				Threshold: scanThreshold,
			},
			models.FormatDocx:   &DocxExtractor{},
			models.FormatDoc:    &LegacyDocExtractor{},
			models.FormatPptx:   &PptxExtractor{},
			models.FormatXlsx:   &XlsxExtractor{},
			models.FormatText:   &TextExtractor{},
			models.FormatImage:  visionEx,
			models.FormatLegacy: visionEx,
		},
	}
}

var _ core.TextExtractor = (*Registry)(nil)

// Extract runs the extractor registered for the format. The caller
// treats empty output as "skip this file".
func (r *Registry) Extract(ctx context.Context, format models.Format, mimeType string, data []byte) (string, error) {
	ex, ok := r.byFormat[format]
	if !ok {
		return "", fmt.Errorf("no extractor for format %q", format)
	}
	return ex.Extract(ctx, mimeType, data)
}

func readAll(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}

// countVisibleChars counts non-whitespace runes, the signal used to
// decide whether a fixed-layout document is scanned/image-only.
func countVisibleChars(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
