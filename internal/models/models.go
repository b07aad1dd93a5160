package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Category classifies the role of a document within a branch/year.
type Category string

const (
	CategorySyllabus      Category = "syllabus"
	CategoryTimetable     Category = "timetable"
	CategoryQuestionPaper Category = "question_paper"
	CategoryNotes         Category = "notes"
	CategoryAssignment    Category = "assignment"
)

// Format is the closed set of document variants the extractor handles.
type Format string

const (
	FormatPDF    Format = "pdf"    // fixed-layout documents (incl. exported Google Docs)
	FormatDocx   Format = "docx"   // OOXML word-processor documents
	FormatDoc    Format = "doc"    // legacy binary Word documents
	FormatPptx   Format = "pptx"   // OOXML slide decks
	FormatXlsx   Format = "xlsx"   // OOXML spreadsheets
	FormatImage  Format = "image"  // raster images
	FormatText   Format = "text"   // plain text / CSV / markdown
	FormatLegacy Format = "legacy" // old binary slide/spreadsheet formats, no native parser
)

// Google Workspace MIME types. These have no downloadable representation
// and are exported as PDF by the fetcher.
const (
	MimeTypeFolder      = "application/vnd.google-apps.folder"
	MimeTypeGoogleDoc   = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlide = "application/vnd.google-apps.presentation"
)

// formatByMIME maps supported MIME types to extractor formats.
var formatByMIME = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDocx,
	"application/msword": FormatDoc,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": FormatPptx,
	"application/vnd.ms-powerpoint": FormatLegacy,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FormatXlsx,
	"application/vnd.ms-excel": FormatLegacy,
	"image/jpeg":               FormatImage,
	"image/png":                FormatImage,
	"image/webp":               FormatImage,
	"image/bmp":                FormatImage,
	"image/gif":                FormatImage,
	"text/plain":               FormatText,
	"text/csv":                 FormatText,
	"text/markdown":            FormatText,
	MimeTypeGoogleDoc:          FormatPDF,
	MimeTypeGoogleSheet:        FormatPDF,
	MimeTypeGoogleSlide:        FormatPDF,
}

// FormatForMIME resolves the extractor format for a file. Unknown text/*
// types fall back to plain text; anything else is unsupported.
func FormatForMIME(mimeType, filename string) (Format, bool) {
	if f, ok := formatByMIME[mimeType]; ok {
		return f, true
	}
	if strings.HasPrefix(mimeType, "text/") {
		return FormatText, true
	}
	// Some sources report a generic octet-stream; trust the extension.
	if mimeType == "application/octet-stream" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".pdf":
			return FormatPDF, true
		case ".txt", ".csv", ".md":
			return FormatText, true
		}
	}
	return "", false
}

// RemoteFile is one entry from the remote folder listing.
type RemoteFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MIMEType     string `json:"mime_type"`
	WebViewLink  string `json:"web_view_link"`
	ModifiedTime string `json:"modified_time"`
}

// SourceDocument is a discovered file together with its place in the
// branch → year → category hierarchy. It lives only for one ingestion pass.
type SourceDocument struct {
	File     RemoteFile `json:"file"`
	Branch   string     `json:"branch"`
	Year     int        `json:"year"`
	Category Category   `json:"category"`
}

// ChunkID derives the deterministic vector-record id for chunk i of a
// document. Stable across runs so re-ingestion overwrites in place.
func ChunkID(branch string, year int, fileID, filename string, i int) string {
	key := fileID
	if key == "" {
		key = filename
	}
	return fmt.Sprintf("%s_%d_%s_%d", branch, year, key, i)
}

// ChunkMetadata builds the per-record metadata stored alongside a chunk.
// The vector store keeps string values only, so year is stringified.
func ChunkMetadata(doc SourceDocument) map[string]string {
	return map[string]string{
		"branch":   strings.ToUpper(doc.Branch),
		"year":     fmt.Sprintf("%d", doc.Year),
		"category": string(doc.Category),
		"filename": doc.File.Name,
		"link":     doc.File.WebViewLink,
	}
}

// SearchResult is one retrieved chunk with its source metadata.
type SearchResult struct {
	Content  string  `json:"content"`
	Filename string  `json:"filename"`
	Category string  `json:"category"`
	Link     string  `json:"link"`
	Distance float32 `json:"distance"`
}

// BranchStats accumulates per-branch ingestion outcomes for one run.
type BranchStats struct {
	Files   int `json:"files"`
	Chunks  int `json:"chunks"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// SyncResult is the aggregate outcome of one sync run. It is always
// well-formed, even when individual files or folders failed.
type SyncResult struct {
	RunID       string                  `json:"run_id"`
	Status      string                  `json:"status"`
	TotalChunks int                     `json:"total_chunks"`
	Branches    map[string]*BranchStats `json:"details"`
}

// Sync statuses.
const (
	SyncStatusComplete = "complete"
	SyncStatusSkipped  = "skipped"
	SyncStatusBusy     = "busy"
)
