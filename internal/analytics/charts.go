package analytics

import "strconv"

// ChartKind selects how the browser draws a chart.
type ChartKind string

const (
	KindLine ChartKind = "line"
	KindBar  ChartKind = "bar"
	KindPie  ChartKind = "pie"
)

type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Chart is a ready-to-draw dataset plus the labels the browser needs.
type Chart struct {
	ID     string    `json:"id"`
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XField string    `json:"xField,omitempty"`
	YField string    `json:"yField,omitempty"`
	Unit   string    `json:"unit,omitempty"`
	Color  string    `json:"color,omitempty"`
	Legend string    `json:"legend,omitempty"`
	Points []Point   `json:"points"`
}

// Total sums the chart's values.
func (c Chart) Total() float64 {
	var sum float64
	for _, p := range c.Points {
		sum += p.Value
	}
	return sum
}

// Panel is the analytics page content.
type Panel struct {
	Title  string  `json:"title"`
	Charts []Chart `json:"charts"`
}

// SamplePanel returns the fixed sample datasets shown on the analytics page.
// Nothing here is computed from stored tasks.
func SamplePanel() Panel {
	return Panel{
		Title: "Analytics Panel Charts",
		Charts: []Chart{
			cumulativeTime(),
			timePerStage(),
			shareByNodeType(),
		},
	}
}

func cumulativeTime() Chart {
	times := []float64{2, 5, 9, 14, 18, 22, 28, 35, 45}
	points := make([]Point, 0, len(times))
	for i, v := range times {
		points = append(points, Point{Label: nodeLabel(i + 1), Value: v})
	}
	return Chart{
		ID:     "cumulative-time",
		Kind:   KindLine,
		Title:  "Cumulative execution time",
		XField: "node",
		YField: "time",
		Unit:   "sec",
		Points: points,
	}
}

func timePerStage() Chart {
	return Chart{
		ID:     "time-per-stage",
		Kind:   KindBar,
		Title:  "Execution time per stage",
		XField: "node",
		YField: "executionTime",
		Unit:   "sec",
		Color:  "#2989FF",
		Points: []Point{
			{Label: "Task Start", Value: 2},
			{Label: "Task Processing", Value: 10},
			{Label: "Approval", Value: 5},
			{Label: "Task End", Value: 3},
			{Label: "Notification", Value: 1},
		},
	}
}

func shareByNodeType() Chart {
	return Chart{
		ID:     "share-by-type",
		Kind:   KindPie,
		Title:  "Time share by node type",
		Unit:   "%",
		Legend: "Node Type",
		Points: []Point{
			{Label: "Node Type A", Value: 30},
			{Label: "Node Type B", Value: 25},
			{Label: "Node Type C", Value: 20},
			{Label: "Node Type D", Value: 15},
			{Label: "Node Type E", Value: 10},
		},
	}
}

func nodeLabel(i int) string {
	return "Node " + strconv.Itoa(i)
}
