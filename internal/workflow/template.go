package workflow

import (
	"fmt"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
)

// Template slots, in pipeline order.
const (
	SlotTaskName = 1
	SlotApproval = 2
	SlotStart    = 3
	SlotEnd      = 4
)

var slotPositions = [...]model.Position{
	{X: 250, Y: 150},
	{X: 250, Y: 250},
	{X: 250, Y: 350},
	{X: 250, Y: 450},
}

// NodeID names the node occupying slot of task taskID.
func NodeID(taskID, slot int) string {
	return fmt.Sprintf("task-%d-%d", taskID, slot)
}

func edgeID(taskID, from, to int) string {
	return fmt.Sprintf("e%d-%d-%d", taskID, from, to)
}

// BuildTask returns the fixed four-node, three-edge skeleton for taskID.
func BuildTask(taskID int) model.Task {
	data := [...]model.NodeData{
		model.TaskNameData{},
		model.ApprovalData{},
		model.StartData{},
		model.EndData{},
	}

	nodes := make([]model.Node, 0, len(data))
	for i, d := range data {
		nodes = append(nodes, model.Node{
			ID:       NodeID(taskID, i+1),
			Position: slotPositions[i],
			Data:     d,
		})
	}

	edges := []model.Edge{
		{
			ID:       edgeID(taskID, SlotTaskName, SlotApproval),
			Source:   NodeID(taskID, SlotTaskName),
			Target:   NodeID(taskID, SlotApproval),
			Animated: true,
			Type:     model.EdgeSmoothStep,
		},
		{
			ID:       edgeID(taskID, SlotApproval, SlotStart),
			Source:   NodeID(taskID, SlotApproval),
			Target:   NodeID(taskID, SlotStart),
			Animated: true,
			Type:     model.EdgeSmoothStep,
		},
		{
			ID:       edgeID(taskID, SlotStart, SlotEnd),
			Source:   NodeID(taskID, SlotStart),
			Target:   NodeID(taskID, SlotEnd),
			Animated: true,
		},
	}

	return model.Task{ID: taskID, Nodes: nodes, Edges: edges}
}
