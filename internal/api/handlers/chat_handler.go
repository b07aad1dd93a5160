package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/adityakp-dev/Acadex/internal/core"
	"github.com/adityakp-dev/Acadex/internal/models"
	"github.com/adityakp-dev/Acadex/internal/services"
)

type ChatHandler struct {
	query *services.QueryService
	llm   core.LLMProvider
	topK  int
}

func NewChatHandler(query *services.QueryService, llm core.LLMProvider, topK int) *ChatHandler {
	return &ChatHandler{query: query, llm: llm, topK: topK}
}

type ChatRequest struct {
	Message string `json:"message"`
	Branch  string `json:"branch"`
	Year    int    `json:"year"`
}

type ChatResponse struct {
	Answer  string                `json:"answer"`
	Sources []models.SearchResult `json:"sources"`
}

const answerSystemPrompt = "You are an academic assistant for engineering students. " +
	"Answer using only the provided course material excerpts. " +
	"If the material does not cover the question, say so instead of guessing."

// Ask retrieves chunks scoped to the student's branch and year, then
// generates an answer grounded in them.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" || req.Branch == "" || req.Year < 1 || req.Year > 4 {
		http.Error(w, "message, branch and year (1-4) are required", http.StatusBadRequest)
		return
	}

	results := h.query.Query(ctx, req.Message, req.Branch, req.Year, h.topK)

	var sb strings.Builder
	if len(results) == 0 {
		sb.WriteString("No relevant academic materials found for this query.")
	} else {
		for i, res := range results {
			fmt.Fprintf(&sb, "[Source %d: %s (%s)]\n%s\n\n", i+1, res.Filename, res.Category, res.Content)
		}
	}

	userPrompt := fmt.Sprintf("Course material:\n%s\nQuestion: %s", sb.String(), req.Message)

	answer, err := h.llm.Generate(ctx, answerSystemPrompt, userPrompt)
	if err != nil {
		http.Error(w, fmt.Sprintf("generation failed: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ChatResponse{Answer: answer, Sources: results})
}
