// Package drive wraps the Google Drive v3 API for read-only crawling of
// shared branch folders. Faculty share their folders with the service
// account email; no end-user OAuth flow is involved.
package drive

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/time/rate"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/adityakp-dev/Acadex/internal/models"
)

const (
	listPageSize = 100
	listFields   = "nextPageToken, files(id, name, mimeType, webViewLink, modifiedTime)"

	// exportMIME is the fixed-layout target for Google-native documents,
	// whose own representation cannot be downloaded directly.
	exportMIME = "application/pdf"
)

// Client is a rate-limited Drive API client.
type Client struct {
	svc     *gdrive.Service
	limiter *rate.Limiter
}

// NewClient builds a Drive client from a service account key file.
func NewClient(ctx context.Context, credentialsPath string) (*Client, error) {
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("service account file not accessible at %q: %w", credentialsPath, err)
	}

	svc, err := gdrive.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(gdrive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Client{
		svc: svc,
		// Drive allows ~12000 queries/min per project; stay well under.
		limiter: rate.NewLimiter(rate.Limit(10), 5),
	}, nil
}

// ListChildren returns all non-trashed children of a folder, exhausting
// every page of the listing.
func (c *Client) ListChildren(ctx context.Context, folderID string) ([]models.RemoteFile, error) {
	var out []models.RemoteFile
	pageToken := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := c.svc.Files.List().
			Q(fmt.Sprintf("'%s' in parents and trashed = false", folderID)).
			Spaces("drive").
			Fields(listFields).
			PageSize(listPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list folder %s: %w", folderID, err)
		}

		for _, f := range resp.Files {
			out = append(out, models.RemoteFile{
				ID:           f.Id,
				Name:         f.Name,
				MIMEType:     f.MimeType,
				WebViewLink:  f.WebViewLink,
				ModifiedTime: f.ModifiedTime,
			})
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return out, nil
		}
	}
}

// Download streams a native file's bytes.
func (c *Client) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, err)
	}
	return resp.Body, nil
}

// Export converts a Google-native document to PDF and streams the result.
func (c *Client) Export(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Files.Export(fileID, exportMIME).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("export file %s: %w", fileID, err)
	}
	return resp.Body, nil
}
