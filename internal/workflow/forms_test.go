package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskForm_ValidateCountsCalendarDays(t *testing.T) {
	cases := []struct {
		name  string
		span  []string
		total int
	}{
		{name: "bare dates", span: []string{"2024-01-01", "2024-01-05"}, total: 4},
		{name: "same day", span: []string{"2024-01-05", "2024-01-05"}, total: 0},
		{name: "end carries an east offset", span: []string{"2024-01-01", "2024-01-05T01:00:00+05:00"}, total: 4},
		{name: "start carries a west offset", span: []string{"2024-01-05T23:00:00-02:00", "2024-01-05"}, total: 0},
		{name: "both carry times", span: []string{"2024-01-01T22:30:00Z", "2024-01-03T00:15:00+01:00"}, total: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := TaskForm{TaskName: "n", Assignee: "a", TaskDuration: tc.span}.Validate()
			require.NoError(t, err)
			assert.Equal(t, tc.total, d.TotalTime)
			assert.Equal(t, tc.span, d.TaskDuration)
		})
	}
}

func TestTaskForm_ValidateRejectsBackwardsAndJunk(t *testing.T) {
	_, err := TaskForm{TaskName: "n", Assignee: "a", TaskDuration: []string{"2024-01-05", "2024-01-04T23:59:00Z"}}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Task duration must end on or after its start!", verr.Fields["taskDuration"])

	_, err = TaskForm{TaskName: "n", Assignee: "a", TaskDuration: []string{"01/05/2024", "2024-01-06"}}.Validate()
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Task duration dates must look like 2006-01-02!", verr.Fields["taskDuration"])
}
