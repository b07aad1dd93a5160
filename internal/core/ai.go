package core

import "context"

type EmbeddingProvider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// VisionProvider runs a multimodal generation over raw document bytes.
// Used for OCR of images, scanned PDFs and legacy binary formats.
type VisionProvider interface {
	GenerateVision(ctx context.Context, prompt string, mimeType string, data []byte) (string, error)
}
