package workflow

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
)

type Handler struct {
	ws *Workspace
}

func NewHandler(ws *Workspace) *Handler {
	return &Handler{ws: ws}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// writeWorkflowErr maps core errors onto status codes.
func writeWorkflowErr(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNodeNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotConfirmed), errors.Is(err, ErrNoOpenForm), errors.Is(err, ErrNoActiveTask):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidEdge):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// /api/tasks
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.ws.Tasks())
		return
	case http.MethodPost:
		t := h.ws.CreateTask(r.Context())
		writeJSON(w, http.StatusCreated, map[string]any{
			"task":  t,
			"graph": h.ws.Graph(),
		})
		return
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
}

// /api/tasks/{id}[/select]
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tasks/"), "/")
	if tail == "" {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	parts := strings.Split(tail, "/")
	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			t, err := h.ws.Task(id)
			if err != nil {
				writeWorkflowErr(w, err)
				return
			}
			writeJSON(w, http.StatusOK, t)
			return

		case http.MethodDelete:
			confirmed := truthy(r.URL.Query().Get("confirm"))
			err := h.ws.DeleteTask(r.Context(), id, ConfirmFunc(func(string) bool { return confirmed }))
			if err != nil {
				writeWorkflowErr(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"ok":    true,
				"graph": h.ws.Graph(),
			})
			return

		default:
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
	}

	if len(parts) == 2 && parts[1] == "select" {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		t, err := h.ws.SelectTask(r.Context(), id)
		if err != nil {
			writeWorkflowErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"task":  t,
			"graph": h.ws.Graph(),
		})
		return
	}

	writeErr(w, http.StatusNotFound, "not found")
}

// /api/graph
func (h *Handler) GraphRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Graph())
}

// /api/graph/nodes/{nodeId}/click, /api/graph/nodes/{nodeId}/position, /api/graph/edges
func (h *Handler) GraphSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/graph/"), "/")
	parts := strings.Split(tail, "/")

	if len(parts) == 1 && parts[0] == "edges" {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var in model.Edge
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		e, err := h.ws.ConnectEdge(in)
		if err != nil {
			writeWorkflowErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, e)
		return
	}

	if len(parts) != 3 || parts[0] != "nodes" || parts[1] == "" {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	nodeID := parts[1]

	switch parts[2] {
	case "click":
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		res, err := h.ws.ClickNode(r.Context(), nodeID)
		if err != nil {
			writeWorkflowErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"result": res,
			"graph":  h.ws.Graph(),
		})
		return

	case "position":
		if r.Method != http.MethodPut {
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var pos model.Position
		if err := decodeJSON(r, &pos); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := h.ws.MoveNode(nodeID, pos); err != nil {
			writeWorkflowErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	writeErr(w, http.StatusNotFound, "not found")
}

// /api/forms/{task|approval|cancel}
func (h *Handler) Forms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	kind := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/forms/"), "/")

	var (
		t   model.Task
		err error
	)
	switch kind {
	case "task":
		var in TaskForm
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		t, err = h.ws.SaveTaskForm(r.Context(), in)
	case "approval":
		var in ApprovalForm
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		t, err = h.ws.SaveApprovalForm(r.Context(), in)
	case "cancel":
		if r.Body != nil {
			_, _ = io.Copy(io.Discard, r.Body)
		}
		h.ws.CancelForm()
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "graph": h.ws.Graph()})
		return
	default:
		writeErr(w, http.StatusNotFound, "not found")
		return
	}

	if err != nil {
		writeWorkflowErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"task":  t,
		"graph": h.ws.Graph(),
	})
}
