package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRole = errors.New("unknown node label")

// Role is the fixed label of a pipeline stage. It selects the business rule
// applied when the node is clicked.
type Role string

const (
	RoleTaskName Role = "Task Name"
	RoleApproval Role = "Decision Process / Manager Approval"
	RoleStart    Role = "Start"
	RoleEnd      Role = "End"
)

// Decision values accepted by the approval form.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

type TaskDetails struct {
	TaskName     string   `json:"taskName"`
	Assignee     string   `json:"assignee"`
	TaskDuration []string `json:"taskDuration"`
	TotalTime    int      `json:"totalTime,omitempty"` // whole days between the duration bounds
}

// EmptyTaskDetails is the placeholder seeded when a task is selected.
func EmptyTaskDetails() *TaskDetails {
	return &TaskDetails{TaskName: "", Assignee: "", TaskDuration: []string{}}
}

// Complete reports whether every required field carries a value.
func (d *TaskDetails) Complete() bool {
	if d == nil {
		return false
	}
	return strings.TrimSpace(d.TaskName) != "" &&
		strings.TrimSpace(d.Assignee) != "" &&
		len(d.TaskDuration) == 2
}

func (d *TaskDetails) clone() *TaskDetails {
	if d == nil {
		return nil
	}
	c := *d
	if d.TaskDuration != nil {
		c.TaskDuration = append([]string{}, d.TaskDuration...)
	}
	return &c
}

type ApprovalDetails struct {
	Decision string `json:"decision"`
	Comment  string `json:"comment"`
}

func (d *ApprovalDetails) Complete() bool {
	return d != nil && strings.TrimSpace(d.Decision) != ""
}

func (d *ApprovalDetails) clone() *ApprovalDetails {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// NodeData is the role-specific payload of a node. Exactly one of
// TaskNameData, ApprovalData, StartData or EndData.
type NodeData interface {
	Role() Role
	cloneData() NodeData
}

type TaskNameData struct {
	TaskDetails *TaskDetails
}

type ApprovalData struct {
	ApprovalDetails *ApprovalDetails
}

type StartData struct {
	Timestamp *string
}

type EndData struct {
	Timestamp *string
}

func (TaskNameData) Role() Role { return RoleTaskName }
func (ApprovalData) Role() Role { return RoleApproval }
func (StartData) Role() Role    { return RoleStart }
func (EndData) Role() Role      { return RoleEnd }

func (d TaskNameData) cloneData() NodeData {
	return TaskNameData{TaskDetails: d.TaskDetails.clone()}
}

func (d ApprovalData) cloneData() NodeData {
	return ApprovalData{ApprovalDetails: d.ApprovalDetails.clone()}
}

func (d StartData) cloneData() NodeData { return StartData{Timestamp: cloneString(d.Timestamp)} }
func (d EndData) cloneData() NodeData   { return EndData{Timestamp: cloneString(d.Timestamp)} }

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

type Node struct {
	ID       string
	Position Position
	Data     NodeData
}

// Role returns the node's stage label, or "" when the node carries no data.
func (n Node) Role() Role {
	if n.Data == nil {
		return ""
	}
	return n.Data.Role()
}

func (n Node) Clone() Node {
	c := n
	if n.Data != nil {
		c.Data = n.Data.cloneData()
	}
	return c
}

// Label is the display text, identical to the role.
func (n Node) Label() string { return string(n.Role()) }

type nodeJSON struct {
	ID       string          `json:"id"`
	Position Position        `json:"position"`
	Data     json.RawMessage `json:"data"`
}

type taskNameJSON struct {
	Label       Role         `json:"label"`
	TaskDetails *TaskDetails `json:"taskDetails"`
}

type approvalJSON struct {
	Label           Role             `json:"label"`
	ApprovalDetails *ApprovalDetails `json:"approvalDetails"`
}

type timestampJSON struct {
	Label     Role    `json:"label"`
	Timestamp *string `json:"timestamp"`
}

func (n Node) MarshalJSON() ([]byte, error) {
	var data any
	switch d := n.Data.(type) {
	case TaskNameData:
		data = taskNameJSON{Label: RoleTaskName, TaskDetails: d.TaskDetails}
	case ApprovalData:
		data = approvalJSON{Label: RoleApproval, ApprovalDetails: d.ApprovalDetails}
	case StartData:
		data = timestampJSON{Label: RoleStart, Timestamp: d.Timestamp}
	case EndData:
		data = timestampJSON{Label: RoleEnd, Timestamp: d.Timestamp}
	default:
		return nil, fmt.Errorf("node %s: %w", n.ID, ErrUnknownRole)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(nodeJSON{ID: n.ID, Position: n.Position, Data: raw})
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	var probe struct {
		Label Role `json:"label"`
	}
	if len(in.Data) > 0 {
		if err := json.Unmarshal(in.Data, &probe); err != nil {
			return fmt.Errorf("node %s data: %w", in.ID, err)
		}
	}

	var data NodeData
	switch probe.Label {
	case RoleTaskName:
		var d taskNameJSON
		if err := json.Unmarshal(in.Data, &d); err != nil {
			return err
		}
		data = TaskNameData{TaskDetails: d.TaskDetails}
	case RoleApproval:
		var d approvalJSON
		if err := json.Unmarshal(in.Data, &d); err != nil {
			return err
		}
		data = ApprovalData{ApprovalDetails: d.ApprovalDetails}
	case RoleStart, RoleEnd:
		var d timestampJSON
		if err := json.Unmarshal(in.Data, &d); err != nil {
			return err
		}
		if probe.Label == RoleStart {
			data = StartData{Timestamp: d.Timestamp}
		} else {
			data = EndData{Timestamp: d.Timestamp}
		}
	default:
		return fmt.Errorf("node %s label %q: %w", in.ID, probe.Label, ErrUnknownRole)
	}

	n.ID = in.ID
	n.Position = in.Position
	n.Data = data
	return nil
}
