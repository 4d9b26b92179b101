package ops

import "github.com/singhdivyam772/workflow-builder-assignment/internal/model"

// TaskSummary is one row of the `tasks` listing.
type TaskSummary struct {
	ID        int
	TaskName  string
	Assignee  string
	TotalTime int
	Details   bool // task details record present and complete
	Decision  string
	StartedAt string
	EndedAt   string
}

// Stage reports how far the task has progressed through its pipeline.
func (s TaskSummary) Stage() string {
	switch {
	case s.EndedAt != "":
		return "ended"
	case s.StartedAt != "":
		return "started"
	case s.Decision != "":
		return s.Decision
	case s.Details:
		return "awaiting approval"
	default:
		return "draft"
	}
}

func Summarize(tasks []model.Task) []TaskSummary {
	out := make([]TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		s := TaskSummary{ID: t.ID}
		for _, n := range t.Nodes {
			switch d := n.Data.(type) {
			case model.TaskNameData:
				if d.TaskDetails != nil {
					s.TaskName = d.TaskDetails.TaskName
					s.Assignee = d.TaskDetails.Assignee
					s.TotalTime = d.TaskDetails.TotalTime
					s.Details = d.TaskDetails.Complete()
				}
			case model.ApprovalData:
				if d.ApprovalDetails != nil {
					s.Decision = d.ApprovalDetails.Decision
				}
			case model.StartData:
				if d.Timestamp != nil {
					s.StartedAt = *d.Timestamp
				}
			case model.EndData:
				if d.Timestamp != nil {
					s.EndedAt = *d.Timestamp
				}
			}
		}
		out = append(out, s)
	}
	return out
}
