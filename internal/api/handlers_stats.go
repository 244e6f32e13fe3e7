package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleTransformStats(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil || s.metrics.Latency() == nil {
		jsonError(w, "transform stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"site":        s.transformer.Site(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       s.metrics.Latency().Snapshot(),
	})
}
