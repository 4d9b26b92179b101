package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/config"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/notify"
)

var ErrNoOpenForm = errors.New("no matching form is open")

type FormKind string

const (
	FormNone     FormKind = ""
	FormTask     FormKind = "task"
	FormApproval FormKind = "approval"
)

// FormState is the modal currently open on the canvas and its prefilled values.
type FormState struct {
	Kind     FormKind      `json:"kind,omitempty"`
	TaskID   int           `json:"taskId,omitempty"`
	NodeID   string        `json:"nodeId,omitempty"`
	Task     *TaskForm     `json:"task,omitempty"`
	Approval *ApprovalForm `json:"approval,omitempty"`
}

func (f FormState) Open() bool { return f.Kind != FormNone }

type ClickOutcome string

const (
	OutcomeFormOpened  ClickOutcome = "form_opened"
	OutcomeRejected    ClickOutcome = "rejected"
	OutcomeTimestamped ClickOutcome = "timestamped"
	OutcomeNone        ClickOutcome = "none"
)

type ClickResult struct {
	Outcome   ClickOutcome `json:"outcome"`
	Node      RenderNode   `json:"node"`
	Form      *FormState   `json:"form,omitempty"`
	Timestamp string       `json:"timestamp,omitempty"`
	Reason    string       `json:"reason,omitempty"`
}

// Controller turns canvas clicks and form submissions into store mutations.
type Controller struct {
	store    *Store
	proj     *Projection
	notifier notify.Notifier
	clock    Clock
	rules    config.Rules
	fill     FillRule

	form FormState
}

func NewController(store *Store, proj *Projection, n notify.Notifier, clock Clock, rules config.Rules) *Controller {
	if n == nil {
		n = notify.Discard{}
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Controller{
		store:    store,
		proj:     proj,
		notifier: n,
		clock:    clock,
		rules:    rules,
		fill:     FillRule{RequireComplete: rules.ApprovalRequiresCompleteTaskDetails},
	}
}

func (c *Controller) Form() FormState { return c.form }

// CancelForm closes any open form and discards its values.
func (c *Controller) CancelForm() { c.form = FormState{} }

// Click handles a click on a displayed node. The color pass runs after
// every click, whatever branch was taken.
func (c *Controller) Click(ctx context.Context, nodeID string) (ClickResult, error) {
	node, ok := c.proj.Node(nodeID)
	if !ok {
		return ClickResult{}, fmt.Errorf("%s: %w", nodeID, ErrNodeNotFound)
	}
	defer c.proj.Recolor()

	switch d := node.Node.Data.(type) {
	case model.TaskNameData:
		form := taskFormFrom(d.TaskDetails)
		c.form = FormState{Kind: FormTask, TaskID: c.proj.TaskID(), NodeID: nodeID, Task: &form}
		return c.opened(node), nil

	case model.ApprovalData:
		if !c.taskNameFilled() {
			c.notifier.Notify(notify.Error(
				"Please complete Task Name details first!",
				"You need to fill out the Task Name details before proceeding.",
			))
			return ClickResult{Outcome: OutcomeRejected, Node: node, Reason: "task name details missing"}, nil
		}
		form := approvalFormFrom(d.ApprovalDetails)
		c.form = FormState{Kind: FormApproval, TaskID: c.proj.TaskID(), NodeID: nodeID, Approval: &form}
		return c.opened(node), nil

	case model.StartData, model.EndData:
		return c.stamp(ctx, node)
	}

	return ClickResult{Outcome: OutcomeNone, Node: node}, nil
}

func (c *Controller) opened(node RenderNode) ClickResult {
	f := c.form
	return ClickResult{Outcome: OutcomeFormOpened, Node: node, Form: &f}
}

// taskNameFilled looks at the Task Name node on the canvas, not in the store.
func (c *Controller) taskNameFilled() bool {
	tn, ok := c.proj.NodeByRole(model.RoleTaskName)
	if !ok {
		return false
	}
	filled, _ := c.fill.Filled(tn.Node)
	return filled
}

func (c *Controller) stamp(ctx context.Context, node RenderNode) (ClickResult, error) {
	ts := nodeTimestamp(c.clock)
	role := node.Node.Role()

	t, err := c.store.UpdateNode(ctx, c.proj.TaskID(), node.Node.ID, func(n *model.Node) error {
		switch n.Data.(type) {
		case model.StartData:
			n.Data = model.StartData{Timestamp: &ts}
		case model.EndData:
			n.Data = model.EndData{Timestamp: &ts}
		}
		return nil
	})
	if err != nil {
		return ClickResult{}, err
	}
	c.proj.Project(t)

	if role == model.RoleStart {
		c.notifier.Notify(notify.Success("Project Started", "Project started at "+ts))
	} else {
		c.notifier.Notify(notify.Success("Project Ended", "Project ended at "+ts))
	}

	updated, _ := c.proj.Node(node.Node.ID)
	return ClickResult{Outcome: OutcomeTimestamped, Node: updated, Timestamp: ts}, nil
}

// SaveTaskForm validates in and writes it into the Task Name node the open
// form belongs to. A validation failure leaves the form open and the store
// untouched.
func (c *Controller) SaveTaskForm(ctx context.Context, in TaskForm) (model.Task, error) {
	if c.form.Kind != FormTask {
		return model.Task{}, ErrNoOpenForm
	}
	details, err := in.Validate()
	if err != nil {
		return model.Task{}, err
	}

	t, err := c.store.UpdateNode(ctx, c.form.TaskID, c.form.NodeID, func(n *model.Node) error {
		n.Data = model.TaskNameData{TaskDetails: details}
		return nil
	})
	if err != nil {
		c.form = FormState{}
		return model.Task{}, err
	}
	c.refresh(t)
	c.form = FormState{}

	c.notifier.Notify(notify.Success("Task Created", fmt.Sprintf(
		"Task Name: %s, Assignee: %s, Duration: %d days",
		details.TaskName, details.Assignee, details.TotalTime,
	)))
	return t, nil
}

// SaveApprovalForm validates in and writes it into the Approval node the
// open form belongs to.
func (c *Controller) SaveApprovalForm(ctx context.Context, in ApprovalForm) (model.Task, error) {
	if c.form.Kind != FormApproval {
		return model.Task{}, ErrNoOpenForm
	}
	details, err := in.Validate(c.rules.ApprovalCommentRequired)
	if err != nil {
		return model.Task{}, err
	}

	t, err := c.store.UpdateNode(ctx, c.form.TaskID, c.form.NodeID, func(n *model.Node) error {
		n.Data = model.ApprovalData{ApprovalDetails: details}
		return nil
	})
	if err != nil {
		c.form = FormState{}
		return model.Task{}, err
	}
	c.refresh(t)
	c.form = FormState{}

	n := notify.Success("Decision Saved", fmt.Sprintf("Action: %s, Comment: %s", details.Decision, details.Comment))
	n.Placement = notify.PlacementTopRight
	c.notifier.Notify(n)
	return t, nil
}

// refresh re-projects t when it is the task on the canvas.
func (c *Controller) refresh(t model.Task) {
	if c.proj.TaskID() == t.ID {
		c.proj.Project(t)
	}
}
