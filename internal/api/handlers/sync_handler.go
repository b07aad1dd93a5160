package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adityakp-dev/Acadex/internal/services"
)

type SyncHandler struct {
	sync  *services.SyncService
	query *services.QueryService
}

func NewSyncHandler(sync *services.SyncService, query *services.QueryService) *SyncHandler {
	return &SyncHandler{sync: sync, query: query}
}

// Trigger runs one sync pass and returns its aggregate result. If a
// pass is already in flight the response reports busy instead of
// starting a second one.
func (h *SyncHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.sync == nil {
		json.NewEncoder(w).Encode(map[string]string{
			"status": "skipped",
			"reason": "no service account configured",
		})
		return
	}

	result := h.sync.Sync(r.Context())
	json.NewEncoder(w).Encode(result)
}

// Health reports liveness plus vector-store stats.
func (h *SyncHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "running",
		"app":    "Acadex",
		"vector_store": map[string]int{
			"total_chunks": h.query.TotalChunks(),
		},
	})
}
