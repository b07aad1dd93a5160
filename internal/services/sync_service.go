package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adityakp-dev/Acadex/internal/core"
	"github.com/adityakp-dev/Acadex/internal/core/ingestion_engine"
	"github.com/adityakp-dev/Acadex/internal/models"
)

// SyncConfig tunes one ingestion pass.
type SyncConfig struct {
	// BranchFolders maps branch code → Drive root folder id. Branches
	// with an empty folder id are skipped (logged, non-fatal).
	BranchFolders map[string]string
	ChunkSize     int
	ChunkOverlap  int
}

// SyncService drives the crawl → fetch → extract → chunk → upsert →
// mark pipeline for every configured branch.
type SyncService struct {
	crawler   core.FolderCrawler
	fetcher   core.FileFetcher
	extractor core.TextExtractor
	index     core.VectorIndex
	manifest  core.Manifest
	cfg       SyncConfig

	// runMu guarantees at most one sync in flight, whether triggered by
	// the scheduler or by the manual endpoint.
	runMu sync.Mutex
}

func NewSyncService(
	crawler core.FolderCrawler,
	fetcher core.FileFetcher,
	extractor core.TextExtractor,
	index core.VectorIndex,
	manifest core.Manifest,
	cfg SyncConfig,
) *SyncService {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = ingestion_engine.DefaultChunkSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = ingestion_engine.DefaultChunkOverlap
	}
	return &SyncService{
		crawler:   crawler,
		fetcher:   fetcher,
		extractor: extractor,
		index:     index,
		manifest:  manifest,
		cfg:       cfg,
	}
}

// Sync runs one full ingestion pass over every configured branch and
// returns a well-formed aggregate result even when individual files or
// folders failed. If another sync is already in flight the call returns
// immediately with a busy status.
func (s *SyncService) Sync(ctx context.Context) *models.SyncResult {
	if !s.runMu.TryLock() {
		return &models.SyncResult{Status: models.SyncStatusBusy, Branches: map[string]*models.BranchStats{}}
	}
	defer s.runMu.Unlock()

	result := &models.SyncResult{
		RunID:    uuid.NewString(),
		Status:   models.SyncStatusComplete,
		Branches: map[string]*models.BranchStats{},
	}
	log.Printf("sync %s: starting", result.RunID)

	for branch, folderID := range s.cfg.BranchFolders {
		if folderID == "" {
			log.Printf("sync %s: no folder id for %s, skipping", result.RunID, branch)
			continue
		}

		stats := &models.BranchStats{}
		result.Branches[branch] = stats

		docs, err := s.crawler.Crawl(ctx, branch, folderID)
		if err != nil {
			log.Printf("sync %s: crawl %s: %v", result.RunID, branch, err)
			continue
		}

		for _, doc := range docs {
			if ctx.Err() != nil {
				log.Printf("sync %s: cancelled", result.RunID)
				return result
			}
			chunks, err := s.processFile(ctx, doc)
			if err != nil {
				log.Printf("sync %s: %s/%s: %v", result.RunID, branch, doc.File.Name, err)
				stats.Failed++
				continue
			}
			if chunks == 0 {
				stats.Skipped++
				continue
			}
			stats.Files++
			stats.Chunks += chunks
			result.TotalChunks += chunks
		}

		log.Printf("sync %s: %s done (%d files, %d chunks, %d skipped, %d failed)",
			result.RunID, branch, stats.Files, stats.Chunks, stats.Skipped, stats.Failed)
	}

	log.Printf("sync %s: complete, %d chunks ingested", result.RunID, result.TotalChunks)
	return result
}

// processFile ingests a single discovered document. Returns the number
// of chunks stored; zero means the file was skipped (already ingested,
// or nothing useful to extract) — not an error.
func (s *SyncService) processFile(ctx context.Context, doc models.SourceDocument) (int, error) {
	known, err := s.manifest.Contains(ctx, doc.File.ID)
	if err != nil {
		return 0, fmt.Errorf("manifest lookup: %w", err)
	}
	if known {
		return 0, nil
	}

	fetched, err := s.fetcher.Fetch(ctx, doc.File)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	defer fetched.Cleanup()

	data, err := os.ReadFile(fetched.Path)
	if err != nil {
		return 0, fmt.Errorf("read fetched file: %w", err)
	}

	text, err := s.extractor.Extract(ctx, fetched.Format, fetched.MIMEType, data)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}

	chunks := ingestion_engine.ChunkText(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	if len(chunks) == 0 {
		log.Printf("sync: no text extracted from %q", doc.File.Name)
		return 0, nil
	}

	ids := make([]string, len(chunks))
	metadatas := make([]map[string]string, len(chunks))
	for i := range chunks {
		ids[i] = models.ChunkID(doc.Branch, doc.Year, doc.File.ID, doc.File.Name, i)
		metadatas[i] = models.ChunkMetadata(doc)
	}

	if err := s.index.Upsert(ctx, ids, chunks, metadatas); err != nil {
		return 0, fmt.Errorf("upsert: %w", err)
	}

	// Mark strictly after the upsert so a crash in between leaves the
	// file eligible for retry.
	if err := s.manifest.Mark(ctx, doc.File.ID, doc.File.ModifiedTime); err != nil {
		return 0, fmt.Errorf("manifest mark: %w", err)
	}

	return len(chunks), nil
}

// RunPeriodic runs Sync, then sleeps interval, until the context is
// cancelled. Iterations never overlap: a new one starts only after the
// previous has fully completed. An in-flight pass is not interrupted
// mid-file; cancellation takes effect between files and between
// iterations.
func (s *SyncService) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.Sync(ctx)
		log.Printf("sync: next run in %s", interval)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
