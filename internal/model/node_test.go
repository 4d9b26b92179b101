package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_MarshalKeepsLabelShape(t *testing.T) {
	n := Node{
		ID:       "task-1-1",
		Position: Position{X: 250, Y: 150},
		Data:     TaskNameData{},
	}
	b, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"task-1-1","position":{"x":250,"y":150},"data":{"label":"Task Name","taskDetails":null}}`, string(b))

	ts := "2024-01-01T10:00:00Z"
	b, err = json.Marshal(Node{ID: "task-1-3", Data: StartData{Timestamp: &ts}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"task-1-3","position":{"x":0,"y":0},"data":{"label":"Start","timestamp":"2024-01-01T10:00:00Z"}}`, string(b))
}

func TestNode_UnmarshalDispatchesOnLabel(t *testing.T) {
	raw := `[
	  {"id":"a","position":{"x":1,"y":2},"data":{"label":"Task Name","taskDetails":{"taskName":"Draft","assignee":"Alice","taskDuration":["2024-01-01","2024-01-05"],"totalTime":4}}},
	  {"id":"b","position":{"x":1,"y":3},"data":{"label":"Decision Process / Manager Approval","approvalDetails":{"decision":"approved","comment":"ok"}}},
	  {"id":"c","position":{"x":1,"y":4},"data":{"label":"Start","timestamp":null}},
	  {"id":"d","position":{"x":1,"y":5},"data":{"label":"End","timestamp":"2024-01-02T00:00:00Z"}}
	]`
	var nodes []Node
	require.NoError(t, json.Unmarshal([]byte(raw), &nodes))
	require.Len(t, nodes, 4)

	tn, ok := nodes[0].Data.(TaskNameData)
	require.True(t, ok)
	assert.Equal(t, "Draft", tn.TaskDetails.TaskName)
	assert.Equal(t, 4, tn.TaskDetails.TotalTime)

	ap, ok := nodes[1].Data.(ApprovalData)
	require.True(t, ok)
	assert.Equal(t, DecisionApproved, ap.ApprovalDetails.Decision)

	st, ok := nodes[2].Data.(StartData)
	require.True(t, ok)
	assert.Nil(t, st.Timestamp)

	end, ok := nodes[3].Data.(EndData)
	require.True(t, ok)
	require.NotNil(t, end.Timestamp)
	assert.Equal(t, RoleEnd, nodes[3].Role())
}

func TestNode_UnmarshalRejectsUnknownLabel(t *testing.T) {
	var n Node
	err := json.Unmarshal([]byte(`{"id":"x","data":{"label":"Review"}}`), &n)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestTask_CloneDoesNotAlias(t *testing.T) {
	orig := Task{
		ID: 1,
		Nodes: []Node{
			{ID: "n1", Data: TaskNameData{TaskDetails: &TaskDetails{TaskName: "a", TaskDuration: []string{"x", "y"}}}},
		},
		Edges: []Edge{{ID: "e", Source: "n1", Target: "n1"}},
	}
	c := orig.Clone()
	c.Nodes[0].Data.(TaskNameData).TaskDetails.TaskName = "b"
	c.Nodes[0].Data.(TaskNameData).TaskDetails.TaskDuration[0] = "z"
	c.Edges[0].ID = "changed"

	d := orig.Nodes[0].Data.(TaskNameData).TaskDetails
	assert.Equal(t, "a", d.TaskName)
	assert.Equal(t, "x", d.TaskDuration[0])
	assert.Equal(t, "e", orig.Edges[0].ID)
}

func TestTaskDetails_Complete(t *testing.T) {
	var nilDetails *TaskDetails
	assert.False(t, nilDetails.Complete())
	assert.False(t, EmptyTaskDetails().Complete())
	assert.True(t, (&TaskDetails{TaskName: "a", Assignee: "b", TaskDuration: []string{"1", "2"}}).Complete())
}
