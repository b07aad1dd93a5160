// Package ingestion_engine holds the text-splitting stage of the
// ingestion pipeline.
package ingestion_engine

import (
	"strings"
	"unicode/utf8"
)

// Chunking defaults, counted in runes.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50

	// minChunkableLen is the smallest trimmed text worth splitting;
	// anything shorter is too small to be useful for retrieval.
	minChunkableLen = 10
)

// ChunkText splits text into overlapping windows of size runes,
// advancing by size-overlap each step. Consecutive chunks share exactly
// overlap runes except possibly the final chunk, which may be shorter.
// Slices that trim to empty are dropped. Returns nil for texts under
// the minimum useful length.
func ChunkText(text string, size, overlap int) []string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minChunkableLen {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
	}

	runes := []rune(text)
	step := size - overlap

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
