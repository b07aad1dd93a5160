package extract

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor concatenates the text layer of each page of a
// fixed-layout document.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(_ context.Context, _ string, data []byte) (text string, err error) {
	// The pdf package panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf: parse: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf: open: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if pageText != "" {
			b.WriteString(pageText)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// ScanFallback wraps a fixed-layout extractor and re-routes documents
// through the vision path when direct extraction yields too little
// visible text, which indicates a scanned or image-only source.
type ScanFallback struct {
	Inner     Extractor
	Vision    *VisionExtractor
	Threshold int
}

func (s *ScanFallback) Extract(ctx context.Context, mimeType string, data []byte) (string, error) {
	text, err := s.Inner.Extract(ctx, mimeType, data)
	if err == nil && countVisibleChars(text) >= s.Threshold {
		return text, nil
	}
	if err != nil {
		log.Printf("extract: direct extraction failed (%v), trying vision", err)
	} else {
		log.Printf("extract: only %d visible chars, treating as scanned document", countVisibleChars(text))
	}
	return s.Vision.Extract(ctx, mimeType, data)
}
