package api

import (
	"net/http"

	"gopkg.in/yaml.v3"
)

// StatsProvider reports service counters.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the service counters as JSON, or YAML with ?format=yaml.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats := h.statsProvider.GetStats()
	w.Header().Set("Cache-Control", "no-store")

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, stats)
	case "yaml", "yml":
		out, err := yaml.Marshal(stats)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal", err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(out)
	default:
		writeError(w, http.StatusBadRequest, "bad_request", NewKind("api.stats", ErrBadRequest))
	}
}
