package model

// Position is a canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Task is one instantiated four-stage workflow pipeline.
type Task struct {
	ID    int    `json:"id"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeByID returns the node with the given id and its index.
func (t Task) NodeByID(id string) (Node, int, bool) {
	for i, n := range t.Nodes {
		if n.ID == id {
			return n, i, true
		}
	}
	return Node{}, -1, false
}

// NodeByRole returns the first node playing role and its index.
func (t Task) NodeByRole(role Role) (Node, int, bool) {
	for i, n := range t.Nodes {
		if n.Role() == role {
			return n, i, true
		}
	}
	return Node{}, -1, false
}

// HasNode reports whether id names one of the task's nodes.
func (t Task) HasNode(id string) bool {
	_, _, ok := t.NodeByID(id)
	return ok
}

// Clone returns a deep copy so callers can mutate without aliasing store state.
func (t Task) Clone() Task {
	out := Task{ID: t.ID}
	if t.Nodes != nil {
		out.Nodes = make([]Node, len(t.Nodes))
		for i, n := range t.Nodes {
			out.Nodes[i] = n.Clone()
		}
	}
	if t.Edges != nil {
		out.Edges = append([]Edge(nil), t.Edges...)
	}
	return out
}

// CloneTasks deep-copies a task list.
func CloneTasks(in []Task) []Task {
	if in == nil {
		return nil
	}
	out := make([]Task, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
