package workflow

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
)

// TaskForm holds the values of the task detail form.
type TaskForm struct {
	TaskName     string   `json:"taskName"`
	Assignee     string   `json:"assignee"`
	TaskDuration []string `json:"taskDuration"` // [start, end] as dates
}

// ApprovalForm holds the values of the manager approval form.
type ApprovalForm struct {
	Decision string `json:"decision"`
	Comment  string `json:"comment"`
}

// ValidationError lists the fields that failed, keyed by form field name.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

var dateLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano}

// parseDate reduces s to the calendar day written in it, as UTC midnight.
// Any time of day or offset is dropped.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Validate checks the required fields and derives the total duration in days.
func (f TaskForm) Validate() (*model.TaskDetails, error) {
	verr := &ValidationError{}
	name := strings.TrimSpace(f.TaskName)
	assignee := strings.TrimSpace(f.Assignee)

	if name == "" {
		verr.add("taskName", "Please input the task name!")
	}
	if assignee == "" {
		verr.add("assignee", "Please input the assignee name!")
	}

	var start, end time.Time
	switch {
	case len(f.TaskDuration) == 0:
		verr.add("taskDuration", "Please select the task duration!")
	case len(f.TaskDuration) != 2:
		verr.add("taskDuration", "Task duration needs a start and an end date!")
	default:
		var okStart, okEnd bool
		start, okStart = parseDate(f.TaskDuration[0])
		end, okEnd = parseDate(f.TaskDuration[1])
		switch {
		case !okStart || !okEnd:
			verr.add("taskDuration", "Task duration dates must look like 2006-01-02!")
		case end.Before(start):
			verr.add("taskDuration", "Task duration must end on or after its start!")
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return &model.TaskDetails{
		TaskName:     name,
		Assignee:     assignee,
		TaskDuration: []string{strings.TrimSpace(f.TaskDuration[0]), strings.TrimSpace(f.TaskDuration[1])},
		TotalTime:    int(end.Sub(start).Hours() / 24),
	}, nil
}

// Validate requires a known decision and, when commentRequired, a comment.
func (f ApprovalForm) Validate(commentRequired bool) (*model.ApprovalDetails, error) {
	verr := &ValidationError{}
	decision := strings.ToLower(strings.TrimSpace(f.Decision))
	comment := strings.TrimSpace(f.Comment)

	switch decision {
	case "":
		verr.add("decision", "Please select the decision!")
	case model.DecisionApproved, model.DecisionRejected:
	default:
		verr.add("decision", fmt.Sprintf("Decision must be %q or %q!", model.DecisionApproved, model.DecisionRejected))
	}
	if commentRequired && comment == "" {
		verr.add("comment", "Please enter a comment!")
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return &model.ApprovalDetails{Decision: decision, Comment: comment}, nil
}

func taskFormFrom(d *model.TaskDetails) TaskForm {
	if d == nil {
		return TaskForm{TaskDuration: []string{}}
	}
	f := TaskForm{TaskName: d.TaskName, Assignee: d.Assignee, TaskDuration: []string{}}
	if len(d.TaskDuration) == 2 {
		f.TaskDuration = append(f.TaskDuration, d.TaskDuration...)
	}
	return f
}

func approvalFormFrom(d *model.ApprovalDetails) ApprovalForm {
	if d == nil {
		return ApprovalForm{Decision: "", Comment: ""}
	}
	return ApprovalForm{Decision: d.Decision, Comment: d.Comment}
}
