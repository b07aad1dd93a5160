package extract

import (
	"context"
	"fmt"

	"github.com/adityakp-dev/Acadex/internal/core"
)

// visionPrompt instructs the model to transcribe, not summarize. The
// column separator matches the one used by the native table extractors
// so tabular material is uniform across both paths.
const visionPrompt = `Extract ALL text content from this image/document.
If there are tables, timetables, or structured data, convert them into a clear text format.
If there are rows and columns, preserve the structure using | separators.
If there is handwritten text, do your best to transcribe it.
Include every piece of information visible in the image.
Do NOT add any commentary — just extract the raw content.`

// VisionExtractor reads a document with the multimodal model. It is the
// primary path for raster images and legacy binary formats, and the
// fallback for scanned fixed-layout documents.
type VisionExtractor struct {
	provider core.VisionProvider
}

func NewVisionExtractor(provider core.VisionProvider) *VisionExtractor {
	return &VisionExtractor{provider: provider}
}

func (e *VisionExtractor) Extract(ctx context.Context, mimeType string, data []byte) (string, error) {
	text, err := e.provider.GenerateVision(ctx, visionPrompt, mimeType, data)
	if err != nil {
		return "", fmt.Errorf("vision extract: %w", err)
	}
	return text, nil
}
