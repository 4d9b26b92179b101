package notify

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

type Handler struct {
	feed Feed
}

func NewHandler(feed Feed) *Handler {
	return &Handler{feed: feed}
}

// /api/notifications?after=<seq>
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}
	after := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("after")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "after must be a non-negative integer"})
			return
		}
		after = n
	}

	items := h.feed.Since(after)
	last := after
	if len(items) > 0 {
		last = items[len(items)-1].Seq
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": items,
		"last":          last,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
