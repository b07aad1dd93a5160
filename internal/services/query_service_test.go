package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityakp-dev/Acadex/internal/core"
	"github.com/adityakp-dev/Acadex/internal/models"
)

// recordingIndex captures the filter it was queried with and serves a
// canned response.
type recordingIndex struct {
	lastWhere map[string]string
	lastTopK  int
	records   []core.Record
	err       error
	count     int
}

func (r *recordingIndex) Upsert(context.Context, []string, []string, []map[string]string) error {
	return nil
}

func (r *recordingIndex) Query(_ context.Context, _ string, where map[string]string, topK int) ([]core.Record, error) {
	r.lastWhere = where
	r.lastTopK = topK
	return r.records, r.err
}

func (r *recordingIndex) Count() int { return r.count }

func TestQuery_FilterAndMapping(t *testing.T) {
	index := &recordingIndex{
		records: []core.Record{
			{
				ID:      "cse_2_f1_0",
				Content: "round robin scheduling uses a fixed time quantum",
				Metadata: map[string]string{
					"filename": "os-notes.pdf",
					"category": "question_papers",
					"link":     "https://drive/f1",
				},
				Distance: 0.12,
			},
			{
				ID:       "cse_2_f2_0",
				Content:  "chunk with no metadata",
				Distance: 0.4,
			},
		},
	}
	svc := NewQueryService(index)

	results := svc.Query(context.Background(), "how does round robin work", "cse", 2, 5)

	assert.Equal(t, map[string]string{"branch": "CSE", "year": "2"}, index.lastWhere)
	assert.Equal(t, 5, index.lastTopK)
	require.Len(t, results, 2)

	assert.Equal(t, "round robin scheduling uses a fixed time quantum", results[0].Content)
	assert.Equal(t, "os-notes.pdf", results[0].Filename)
	assert.Equal(t, "question_papers", results[0].Category)
	assert.Equal(t, "https://drive/f1", results[0].Link)
	assert.InDelta(t, 0.12, results[0].Distance, 1e-6)

	// Missing metadata falls back to placeholders instead of zero values.
	assert.Equal(t, "Unknown", results[1].Filename)
	assert.Equal(t, string(models.CategoryNotes), results[1].Category)
	assert.Empty(t, results[1].Link)
}

func TestQuery_IndexErrorDegradesToEmpty(t *testing.T) {
	svc := NewQueryService(&recordingIndex{err: errors.New("collection unavailable")})

	results := svc.Query(context.Background(), "anything", "CSE", 1, 5)

	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestQuery_DefaultsTopK(t *testing.T) {
	index := &recordingIndex{}
	svc := NewQueryService(index)

	svc.Query(context.Background(), "anything", "CSE", 1, 0)

	assert.Equal(t, 5, index.lastTopK)
}

func TestTotalChunks(t *testing.T) {
	svc := NewQueryService(&recordingIndex{count: 42})
	assert.Equal(t, 42, svc.TotalChunks())
}
