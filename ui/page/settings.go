package page

import "strconv"

// Settings carries the config values the pages render with.
type Settings struct {
	Title          string
	PollIntervalMS int
}

func (s Settings) title() string {
	if s.Title == "" {
		return "Workflow Builder"
	}
	return s.Title
}

func (s Settings) poll() string {
	if s.PollIntervalMS <= 0 {
		return "1500"
	}
	return strconv.Itoa(s.PollIntervalMS)
}

type navItem struct {
	Href  string
	Label string
}

var nav = []navItem{
	{Href: "/", Label: "Home"},
	{Href: "/workflow", Label: "Workflow"},
	{Href: "/analytics", Label: "Analytics"},
}
