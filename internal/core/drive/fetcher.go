package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adityakp-dev/Acadex/internal/core"
	"github.com/adityakp-dev/Acadex/internal/models"
)

// Downloader is the slice of the Drive client the fetcher needs.
type Downloader interface {
	Download(ctx context.Context, fileID string) (io.ReadCloser, error)
	Export(ctx context.Context, fileID string) (io.ReadCloser, error)
}

// Fetcher materializes remote files into temporary local files. Google
// Docs/Sheets/Slides are exported as PDF since their native
// representation cannot be downloaded.
type Fetcher struct {
	client Downloader
}

func NewFetcher(client Downloader) *Fetcher {
	return &Fetcher{client: client}
}

var _ core.FileFetcher = (*Fetcher)(nil)

// Fetch downloads (or exports) the file into a temp file and reports the
// format the extractor should use. The caller owns the returned file and
// must Cleanup it on every exit path.
func (f *Fetcher) Fetch(ctx context.Context, file models.RemoteFile) (*core.FetchedFile, error) {
	var (
		body     io.ReadCloser
		err      error
		format   models.Format
		mimeType = file.MIMEType
	)

	switch file.MIMEType {
	case models.MimeTypeGoogleDoc, models.MimeTypeGoogleSheet, models.MimeTypeGoogleSlide:
		body, err = f.client.Export(ctx, file.ID)
		format = models.FormatPDF
		mimeType = "application/pdf"
	default:
		var ok bool
		format, ok = models.FormatForMIME(file.MIMEType, file.Name)
		if !ok {
			return nil, fmt.Errorf("unsupported type %q for %q", file.MIMEType, file.Name)
		}
		body, err = f.client.Download(ctx, file.ID)
	}
	if err != nil {
		return nil, err
	}
	defer body.Close()

	tmp, err := os.CreateTemp("", "acadex-*"+suffixFor(file.Name, format))
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("write temp file for %q: %w", file.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("close temp file for %q: %w", file.Name, err)
	}

	return &core.FetchedFile{Path: tmp.Name(), Format: format, MIMEType: mimeType}, nil
}

func suffixFor(filename string, format models.Format) string {
	if format == models.FormatPDF {
		return ".pdf"
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	return ".bin"
}
