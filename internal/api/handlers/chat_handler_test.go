package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityakp-dev/Acadex/internal/core"
	"github.com/adityakp-dev/Acadex/internal/services"
)

type stubIndex struct {
	records []core.Record
	count   int
}

func (s *stubIndex) Upsert(context.Context, []string, []string, []map[string]string) error {
	return nil
}

func (s *stubIndex) Query(context.Context, string, map[string]string, int) ([]core.Record, error) {
	return s.records, nil
}

func (s *stubIndex) Count() int { return s.count }

type stubLLM struct {
	answer     string
	err        error
	lastPrompt string
}

func (s *stubLLM) Generate(_ context.Context, _ string, userPrompt string) (string, error) {
	s.lastPrompt = userPrompt
	return s.answer, s.err
}

func TestAsk(t *testing.T) {
	index := &stubIndex{records: []core.Record{{
		Content: "a process control block stores the process state",
		Metadata: map[string]string{
			"filename": "os-notes.pdf",
			"category": "notes",
			"link":     "https://drive/f1",
		},
	}}}
	llm := &stubLLM{answer: "The PCB stores the state of a process."}
	h := NewChatHandler(services.NewQueryService(index), llm, 5)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/query",
		strings.NewReader(`{"message":"what is a PCB?","branch":"CSE","year":2}`))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "The PCB stores the state of a process.", resp.Answer)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "os-notes.pdf", resp.Sources[0].Filename)

	// Retrieved material reaches the model as numbered sources.
	assert.Contains(t, llm.lastPrompt, "[Source 1: os-notes.pdf (notes)]")
	assert.Contains(t, llm.lastPrompt, "a process control block stores the process state")
	assert.Contains(t, llm.lastPrompt, "Question: what is a PCB?")
}

func TestAsk_NoMaterialFound(t *testing.T) {
	llm := &stubLLM{answer: "I could not find material on that."}
	h := NewChatHandler(services.NewQueryService(&stubIndex{}), llm, 5)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/query",
		strings.NewReader(`{"message":"quantum gravity?","branch":"CSE","year":2}`))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, llm.lastPrompt, "No relevant academic materials found")
}

func TestAsk_Validation(t *testing.T) {
	h := NewChatHandler(services.NewQueryService(&stubIndex{}), &stubLLM{}, 5)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"message":`},
		{"empty message", `{"message":"  ","branch":"CSE","year":2}`},
		{"missing branch", `{"message":"hi","year":2}`},
		{"year too low", `{"message":"hi","branch":"CSE","year":0}`},
		{"year too high", `{"message":"hi","branch":"CSE","year":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat/query", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Ask(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAsk_GenerationFailure(t *testing.T) {
	h := NewChatHandler(
		services.NewQueryService(&stubIndex{}),
		&stubLLM{err: errors.New("model overloaded")},
		5,
	)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/query",
		strings.NewReader(`{"message":"hi","branch":"CSE","year":1}`))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
