package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
)

var (
	ErrNoActiveTask = errors.New("no task is displayed")
	ErrInvalidEdge  = errors.New("invalid edge")
)

type Color string

const (
	ColorGreen Color = "green"
	ColorRed   Color = "red"
)

type NodeStyle struct {
	BackgroundColor Color `json:"backgroundColor,omitempty"`
}

// RenderNode is a node as handed to the canvas, with its derived style.
type RenderNode struct {
	Node  model.Node
	Style NodeStyle
}

func (r RenderNode) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(r.Node)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	style, err := json.Marshal(r.Style)
	if err != nil {
		return nil, err
	}
	fields["style"] = style
	return json.Marshal(fields)
}

// FillRule decides whether a node's detail record counts as filled in.
type FillRule struct {
	// RequireComplete demands every required field; otherwise any present
	// record counts.
	RequireComplete bool
}

// Filled reports the fill state of n. applies is false for roles that carry
// no detail record.
func (r FillRule) Filled(n model.Node) (filled, applies bool) {
	switch d := n.Data.(type) {
	case model.TaskNameData:
		if r.RequireComplete {
			return d.TaskDetails.Complete(), true
		}
		return d.TaskDetails != nil, true
	case model.ApprovalData:
		if r.RequireComplete {
			return d.ApprovalDetails.Complete(), true
		}
		return d.ApprovalDetails != nil, true
	default:
		return false, false
	}
}

// Projection holds the node and edge arrays currently on the canvas. It is
// derived from the active task; drags and user-drawn edges live only here
// and are dropped when another task is projected.
type Projection struct {
	rule   FillRule
	taskID int
	nodes  []RenderNode
	edges  []model.Edge
	moved  map[string]model.Position
	drawn  []model.Edge
}

func NewProjection(rule FillRule) *Projection {
	return &Projection{
		rule:  rule,
		nodes: []RenderNode{},
		edges: []model.Edge{},
		moved: map[string]model.Position{},
	}
}

// TaskID is the displayed task, or 0 when the canvas is empty.
func (p *Projection) TaskID() int { return p.taskID }

// Project replaces the displayed arrays with t's nodes and edges.
func (p *Projection) Project(t model.Task) {
	if t.ID != p.taskID {
		p.moved = map[string]model.Position{}
		p.drawn = nil
	}
	p.taskID = t.ID

	nodes := make([]RenderNode, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		n = n.Clone()
		if pos, ok := p.moved[n.ID]; ok {
			n.Position = pos
		}
		nodes = append(nodes, RenderNode{Node: n})
	}
	p.nodes = nodes

	edges := make([]model.Edge, 0, len(t.Edges)+len(p.drawn))
	edges = append(edges, t.Edges...)
	edges = append(edges, p.drawn...)
	p.edges = edges

	p.Recolor()
}

func (p *Projection) Clear() {
	p.taskID = 0
	p.nodes = []RenderNode{}
	p.edges = []model.Edge{}
	p.moved = map[string]model.Position{}
	p.drawn = nil
}

// Recolor re-derives the indicator color of every Task Name and Approval
// node from its detail record.
func (p *Projection) Recolor() {
	for i := range p.nodes {
		filled, applies := p.rule.Filled(p.nodes[i].Node)
		switch {
		case !applies:
			p.nodes[i].Style = NodeStyle{}
		case filled:
			p.nodes[i].Style = NodeStyle{BackgroundColor: ColorGreen}
		default:
			p.nodes[i].Style = NodeStyle{BackgroundColor: ColorRed}
		}
	}
}

func (p *Projection) Nodes() []RenderNode {
	out := make([]RenderNode, len(p.nodes))
	for i, n := range p.nodes {
		out[i] = RenderNode{Node: n.Node.Clone(), Style: n.Style}
	}
	return out
}

func (p *Projection) Edges() []model.Edge {
	return append([]model.Edge{}, p.edges...)
}

func (p *Projection) Node(id string) (RenderNode, bool) {
	for _, n := range p.nodes {
		if n.Node.ID == id {
			return RenderNode{Node: n.Node.Clone(), Style: n.Style}, true
		}
	}
	return RenderNode{}, false
}

func (p *Projection) NodeByRole(role model.Role) (RenderNode, bool) {
	for _, n := range p.nodes {
		if n.Node.Role() == role {
			return RenderNode{Node: n.Node.Clone(), Style: n.Style}, true
		}
	}
	return RenderNode{}, false
}

// Move records a drag of node id to pos.
func (p *Projection) Move(id string, pos model.Position) error {
	for i := range p.nodes {
		if p.nodes[i].Node.ID == id {
			p.nodes[i].Node.Position = pos
			p.moved[id] = pos
			return nil
		}
	}
	return fmt.Errorf("%s: %w", id, ErrNodeNotFound)
}

// Connect accepts a user-drawn edge. Both endpoints must be nodes of the
// displayed task, distinct, and not already joined in that direction.
func (p *Projection) Connect(e model.Edge) (model.Edge, error) {
	if p.taskID == 0 {
		return model.Edge{}, ErrNoActiveTask
	}
	e.Source = strings.TrimSpace(e.Source)
	e.Target = strings.TrimSpace(e.Target)
	if !p.hasNode(e.Source) || !p.hasNode(e.Target) {
		return model.Edge{}, fmt.Errorf("%w: endpoints must be nodes of task %d", ErrInvalidEdge, p.taskID)
	}
	if e.Source == e.Target {
		return model.Edge{}, fmt.Errorf("%w: a node cannot connect to itself", ErrInvalidEdge)
	}
	e.ID = strings.TrimSpace(e.ID)
	if e.ID == "" {
		e.ID = "xy-edge__" + e.Source + "-" + e.Target
	}
	for _, cur := range p.edges {
		if cur.Source == e.Source && cur.Target == e.Target {
			return model.Edge{}, fmt.Errorf("%w: %s already connects to %s", ErrInvalidEdge, e.Source, e.Target)
		}
		if cur.ID == e.ID {
			return model.Edge{}, fmt.Errorf("%w: duplicate edge id %s", ErrInvalidEdge, e.ID)
		}
	}
	p.drawn = append(p.drawn, e)
	p.edges = append(p.edges, e)
	return e, nil
}

func (p *Projection) hasNode(id string) bool {
	for _, n := range p.nodes {
		if n.Node.ID == id {
			return true
		}
	}
	return false
}
