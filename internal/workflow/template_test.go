package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
)

func TestBuildTask_FourNodesThreeEdges(t *testing.T) {
	task := BuildTask(7)

	require.Len(t, task.Nodes, 4)
	require.Len(t, task.Edges, 3)
	assert.Equal(t, 7, task.ID)

	wantRoles := []model.Role{model.RoleTaskName, model.RoleApproval, model.RoleStart, model.RoleEnd}
	for i, n := range task.Nodes {
		assert.Equal(t, NodeID(7, i+1), n.ID)
		assert.Equal(t, wantRoles[i], n.Role())
		assert.Equal(t, 250.0, n.Position.X)
		assert.Equal(t, float64(150+100*i), n.Position.Y)
	}

	assert.Equal(t, "task-7-1", task.Edges[0].Source)
	assert.Equal(t, "task-7-2", task.Edges[0].Target)
	assert.Equal(t, "task-7-3", task.Edges[1].Target)
	assert.Equal(t, "task-7-4", task.Edges[2].Target)
	for _, e := range task.Edges {
		assert.True(t, e.Animated)
		assert.True(t, task.HasNode(e.Source))
		assert.True(t, task.HasNode(e.Target))
	}
	assert.Equal(t, model.EdgeSmoothStep, task.Edges[0].Type)
	assert.Equal(t, model.EdgeSmoothStep, task.Edges[1].Type)
	assert.Empty(t, task.Edges[2].Type)
}

func TestBuildTask_DetailsStartEmpty(t *testing.T) {
	task := BuildTask(1)

	tn, _, ok := task.NodeByRole(model.RoleTaskName)
	require.True(t, ok)
	assert.Nil(t, tn.Data.(model.TaskNameData).TaskDetails)

	ap, _, ok := task.NodeByRole(model.RoleApproval)
	require.True(t, ok)
	assert.Nil(t, ap.Data.(model.ApprovalData).ApprovalDetails)

	st, _, _ := task.NodeByRole(model.RoleStart)
	assert.Nil(t, st.Data.(model.StartData).Timestamp)
}

func TestBuildTask_IDsDoNotCollideAcrossTasks(t *testing.T) {
	a, b := BuildTask(1), BuildTask(2)
	seen := map[string]bool{}
	for _, task := range []model.Task{a, b} {
		for _, n := range task.Nodes {
			assert.False(t, seen[n.ID], "duplicate node id %s", n.ID)
			seen[n.ID] = true
		}
		for _, e := range task.Edges {
			assert.False(t, seen[e.ID], "duplicate edge id %s", e.ID)
			seen[e.ID] = true
		}
	}
}
