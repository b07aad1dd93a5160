package core

import (
	"context"
	"os"

	"github.com/adityakp-dev/Acadex/internal/models"
)

// VectorIndex is the persistent embedding store. Upsert overwrites
// records sharing an id, which makes re-ingestion idempotent at the
// record level.
type VectorIndex interface {
	Upsert(ctx context.Context, ids []string, texts []string, metadatas []map[string]string) error
	// Query returns up to topK records whose metadata matches every
	// key/value in where, ranked by ascending cosine distance.
	Query(ctx context.Context, question string, where map[string]string, topK int) ([]Record, error)
	Count() int
}

// Record is one stored chunk returned from a similarity query.
type Record struct {
	ID       string
	Content  string
	Metadata map[string]string
	Distance float32
}

// Manifest is the durable set of already-ingested external file ids.
// Mark is called only after a file's chunks were successfully upserted.
type Manifest interface {
	Contains(ctx context.Context, fileID string) (bool, error)
	Mark(ctx context.Context, fileID string, modifiedTime string) error
	Close() error
}

// FolderCrawler walks one branch root and returns every ingestible file
// with its year and category. Unreadable or unclassifiable folders are
// skipped, not fatal.
type FolderCrawler interface {
	Crawl(ctx context.Context, branch, rootFolderID string) ([]models.SourceDocument, error)
}

// FileFetcher materializes a remote file into a scoped local resource.
// The caller must call Cleanup on the result on every exit path.
type FileFetcher interface {
	Fetch(ctx context.Context, file models.RemoteFile) (*FetchedFile, error)
}

// FetchedFile is a temporary local copy of a remote file.
type FetchedFile struct {
	Path     string
	Format   models.Format
	MIMEType string
}

// Cleanup removes the temporary file. Safe to call more than once.
func (f *FetchedFile) Cleanup() {
	if f == nil || f.Path == "" {
		return
	}
	_ = os.Remove(f.Path)
	f.Path = ""
}

// TextExtractor produces the best available text for a document, or an
// empty string when nothing could be extracted.
type TextExtractor interface {
	Extract(ctx context.Context, format models.Format, mimeType string, data []byte) (string, error)
}
