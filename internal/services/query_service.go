package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/adityakp-dev/Acadex/internal/core"
	"github.com/adityakp-dev/Acadex/internal/models"
)

// QueryService answers branch/year-scoped similarity queries against
// the vector index.
type QueryService struct {
	index core.VectorIndex
}

func NewQueryService(index core.VectorIndex) *QueryService {
	return &QueryService{index: index}
}

// Query returns up to topK chunks relevant to the question, restricted
// to records whose stored branch and year match exactly. A failing or
// empty index degrades to an empty result list, never an error.
func (s *QueryService) Query(ctx context.Context, question, branch string, year, topK int) []models.SearchResult {
	if topK <= 0 {
		topK = 5
	}
	where := map[string]string{
		"branch": strings.ToUpper(branch),
		"year":   fmt.Sprintf("%d", year),
	}

	records, err := s.index.Query(ctx, question, where, topK)
	if err != nil {
		log.Printf("query: %v", err)
		return []models.SearchResult{}
	}

	results := make([]models.SearchResult, 0, len(records))
	for _, r := range records {
		results = append(results, models.SearchResult{
			Content:  r.Content,
			Filename: metaOr(r.Metadata, "filename", "Unknown"),
			Category: metaOr(r.Metadata, "category", string(models.CategoryNotes)),
			Link:     r.Metadata["link"],
			Distance: r.Distance,
		})
	}
	return results
}

// TotalChunks reports how many records the index holds.
func (s *QueryService) TotalChunks() int {
	return s.index.Count()
}

func metaOr(meta map[string]string, key, fallback string) string {
	if meta == nil {
		return fallback
	}
	if v, ok := meta[key]; ok && v != "" {
		return v
	}
	return fallback
}
