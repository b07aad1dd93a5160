package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatForMIME(t *testing.T) {
	tests := []struct {
		mimeType string
		filename string
		want     Format
		ok       bool
	}{
		{"application/pdf", "notes.pdf", FormatPDF, true},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "a.docx", FormatDocx, true},
		{"application/msword", "old.doc", FormatDoc, true},
		{"application/vnd.ms-powerpoint", "old.ppt", FormatLegacy, true},
		{"image/png", "scan.png", FormatImage, true},
		{"text/x-log", "server.log", FormatText, true}, // unknown text/* falls back to plain text
		{"application/octet-stream", "dump.pdf", FormatPDF, true},
		{"application/octet-stream", "data.csv", FormatText, true},
		{"application/octet-stream", "firmware.bin", "", false},
		{MimeTypeGoogleDoc, "syllabus", FormatPDF, true},
		{"application/x-rar", "archive.rar", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType+"/"+tt.filename, func(t *testing.T) {
			got, ok := FormatForMIME(tt.mimeType, tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChunkID(t *testing.T) {
	assert.Equal(t, "CSE_2_abc123_0", ChunkID("CSE", 2, "abc123", "os-notes.pdf", 0))
	assert.Equal(t, "CSE_2_abc123_7", ChunkID("CSE", 2, "abc123", "os-notes.pdf", 7))
	// Without a file id the name anchors the identity.
	assert.Equal(t, "ECE_1_signals.pdf_0", ChunkID("ECE", 1, "", "signals.pdf", 0))
}

func TestChunkMetadata(t *testing.T) {
	doc := SourceDocument{
		File:     RemoteFile{ID: "abc", Name: "os-notes.pdf", WebViewLink: "https://drive/abc"},
		Branch:   "cse",
		Year:     2,
		Category: CategorySyllabus,
	}

	meta := ChunkMetadata(doc)
	assert.Equal(t, map[string]string{
		"branch":   "CSE",
		"year":     "2",
		"category": "syllabus",
		"filename": "os-notes.pdf",
		"link":     "https://drive/abc",
	}, meta)
}
