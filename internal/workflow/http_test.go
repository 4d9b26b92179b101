package workflow

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h http.HandlerFunc, method, path string, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	}
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHTTP_CreateListAndGetTask(t *testing.T) {
	ws, _ := newTestWorkspace(t, nil)
	h := NewHandler(ws)

	rec := serve(h.TasksRoot, http.MethodPost, "/api/tasks", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	out := decodeBody(t, rec)
	assert.Equal(t, float64(1), out["task"].(map[string]any)["id"])
	graph := out["graph"].(map[string]any)
	assert.Len(t, graph["nodes"], 4)

	rec = serve(h.TasksRoot, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list, 1)

	rec = serve(h.TasksSub, http.MethodGet, "/api/tasks/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h.TasksSub, http.MethodGet, "/api/tasks/7", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h.TasksSub, http.MethodGet, "/api/tasks/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h.TasksRoot, http.MethodPatch, "/api/tasks", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHTTP_SelectAndDelete(t *testing.T) {
	ws, _ := newTestWorkspace(t, nil)
	h := NewHandler(ws)
	serve(h.TasksRoot, http.MethodPost, "/api/tasks", "")
	serve(h.TasksRoot, http.MethodPost, "/api/tasks", "")

	rec := serve(h.TasksSub, http.MethodPost, "/api/tasks/1/select", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeBody(t, rec)
	assert.Equal(t, float64(1), out["graph"].(map[string]any)["activeTaskId"])

	rec = serve(h.TasksSub, http.MethodPost, "/api/tasks/5/select", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h.TasksSub, http.MethodDelete, "/api/tasks/1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, ws.Tasks(), 2)

	rec = serve(h.TasksSub, http.MethodDelete, "/api/tasks/1?confirm=true", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, ws.Tasks(), 1)
	assert.Equal(t, 0, ws.Graph().ActiveTaskID)
}

func TestHTTP_ClickAndSaveForms(t *testing.T) {
	ws, _ := newTestWorkspace(t, nil)
	h := NewHandler(ws)
	serve(h.TasksRoot, http.MethodPost, "/api/tasks", "")

	rec := serve(h.GraphSub, http.MethodPost, "/api/graph/nodes/task-1-2/click", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(t, rec)
	assert.Equal(t, "rejected", out["result"].(map[string]any)["outcome"])

	rec = serve(h.GraphSub, http.MethodPost, "/api/graph/nodes/task-1-1/click", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out = decodeBody(t, rec)
	assert.Equal(t, "form_opened", out["result"].(map[string]any)["outcome"])

	rec = serve(h.Forms, http.MethodPost, "/api/forms/task", `{"taskName":"","assignee":"Alice","taskDuration":["2024-01-01","2024-01-05"]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	out = decodeBody(t, rec)
	assert.Equal(t, "Please input the task name!", out["fields"].(map[string]any)["taskName"])

	rec = serve(h.Forms, http.MethodPost, "/api/forms/task", `{"taskName":"Draft spec","assignee":"Alice","taskDuration":["2024-01-01","2024-01-05"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(h.GraphRoot, http.MethodGet, "/api/graph", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out = decodeBody(t, rec)
	first := out["nodes"].([]any)[0].(map[string]any)
	assert.Equal(t, "green", first["style"].(map[string]any)["backgroundColor"])

	serve(h.GraphSub, http.MethodPost, "/api/graph/nodes/task-1-2/click", "")
	rec = serve(h.Forms, http.MethodPost, "/api/forms/approval", `{"decision":"approved","comment":"ok"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(h.Forms, http.MethodPost, "/api/forms/approval", `{"decision":"approved"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, "no form open")

	rec = serve(h.Forms, http.MethodPost, "/api/forms/task", `{bad`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h.Forms, http.MethodPost, "/api/forms/other", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTP_CancelForm(t *testing.T) {
	ws, _ := newTestWorkspace(t, nil)
	h := NewHandler(ws)
	serve(h.TasksRoot, http.MethodPost, "/api/tasks", "")
	serve(h.GraphSub, http.MethodPost, "/api/graph/nodes/task-1-1/click", "")
	require.True(t, ws.Graph().Form.Open())

	rec := serve(h.Forms, http.MethodPost, "/api/forms/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, ws.Graph().Form.Open())
}

func TestHTTP_MoveAndConnect(t *testing.T) {
	ws, _ := newTestWorkspace(t, nil)
	h := NewHandler(ws)

	rec := serve(h.GraphSub, http.MethodPost, "/api/graph/edges", `{"source":"task-1-1","target":"task-1-4"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, "nothing displayed")

	serve(h.TasksRoot, http.MethodPost, "/api/tasks", "")

	rec = serve(h.GraphSub, http.MethodPut, "/api/graph/nodes/task-1-4/position", `{"x":400,"y":500}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(h.GraphSub, http.MethodPut, "/api/graph/nodes/task-9-4/position", `{"x":1,"y":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h.GraphSub, http.MethodPost, "/api/graph/edges", `{"source":"task-1-1","target":"task-1-4"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(h.GraphSub, http.MethodPost, "/api/graph/edges", `{"source":"task-1-1","target":"task-1-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	g := ws.Graph()
	assert.Len(t, g.Edges, 4)
	task, _ := ws.Task(1)
	assert.Len(t, task.Edges, 3)

	rec = serve(h.GraphSub, http.MethodGet, "/api/graph/nodes/task-1-1/click", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	rec = serve(h.GraphSub, http.MethodPost, "/api/graph/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
