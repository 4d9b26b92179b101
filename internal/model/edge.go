package model

const EdgeSmoothStep = "smoothstep"

type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Animated bool   `json:"animated,omitempty"`
	Type     string `json:"type,omitempty"` // "" renders as the canvas default
}
