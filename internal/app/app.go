package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adityakp-dev/Acadex/internal/config"
	"github.com/adityakp-dev/Acadex/internal/core/drive"
	"github.com/adityakp-dev/Acadex/internal/core/extract"
	"github.com/adityakp-dev/Acadex/internal/core/llm"
	"github.com/adityakp-dev/Acadex/internal/core/manifest"
	"github.com/adityakp-dev/Acadex/internal/core/vectorstore"
	"github.com/adityakp-dev/Acadex/internal/services"
)

// App owns every long-lived component and its lifecycle.
type App struct {
	cfg      *config.Config
	embedder *llm.GeminiEmbedder
	llm      *llm.GeminiLLM
	manifest *manifest.Store
	sync     *services.SyncService
	query    *services.QueryService
	server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	embedder, err := llm.NewGeminiEmbedder(ctx, cfg.AIAPIKey, cfg.EmbedModel)
	if err != nil {
		return nil, fmt.Errorf("init embedder: %w", err)
	}

	llmProvider, err := llm.NewGeminiLLM(ctx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("init llm: %w", err)
	}

	index, err := vectorstore.NewStore(filepath.Join(cfg.DataDir, "chroma"), embedder)
	if err != nil {
		return nil, fmt.Errorf("init vector store: %w", err)
	}
	log.Printf("Vector store ready (%d chunks).", index.Count())

	manifestStore, err := manifest.Open(ctx, filepath.Join(cfg.DataDir, "manifest.db"))
	if err != nil {
		return nil, fmt.Errorf("init manifest: %w", err)
	}

	registry := extract.NewRegistry(llmProvider, cfg.ScanTextThreshold)

	queryService := services.NewQueryService(index)

	var syncService *services.SyncService
	driveClient, err := drive.NewClient(ctx, cfg.ServiceAccountPath)
	if err != nil {
		// No service account means no ingestion, but retrieval over the
		// existing index still works.
		log.Printf("Drive sync disabled: %v", err)
	} else {
		syncService = services.NewSyncService(
			drive.NewCrawler(driveClient),
			drive.NewFetcher(driveClient),
			registry,
			index,
			manifestStore,
			services.SyncConfig{
				BranchFolders: cfg.BranchFolders,
				ChunkSize:     cfg.ChunkSize,
				ChunkOverlap:  cfg.ChunkOverlap,
			},
		)
	}

	a := &App{
		cfg:      cfg,
		embedder: embedder,
		llm:      llmProvider,
		manifest: manifestStore,
		sync:     syncService,
		query:    queryService,
	}
	a.server = NewServer(cfg, a.sync, a.query, llmProvider)
	return a, nil
}

// Run starts the HTTP server and, when Drive sync is configured, an
// initial sync followed by the periodic loop. Blocks until the context
// is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.server.Start(gctx)
	})

	if a.sync != nil {
		g.Go(func() error {
			log.Println("Running initial Drive sync...")
			a.sync.Sync(gctx)
			return a.sync.RunPeriodic(gctx, time.Duration(a.cfg.SyncInterval)*time.Minute)
		})
	}

	err := g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}

func (a *App) Close() {
	if a.manifest != nil {
		_ = a.manifest.Close()
	}
	if a.embedder != nil {
		_ = a.embedder.Close()
	}
	if a.llm != nil {
		_ = a.llm.Close()
	}
}
