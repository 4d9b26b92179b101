package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Placement tells the toast layer where to show the message.
type Placement string

const (
	PlacementTop      Placement = "top"
	PlacementTopRight Placement = "topRight"
)

type Notification struct {
	Seq         int       `json:"seq"`
	ID          string    `json:"id"`
	Level       Level     `json:"level"`
	Message     string    `json:"message"`
	Description string    `json:"description"`
	Placement   Placement `json:"placement"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notifier receives user-visible messages from the workflow core.
type Notifier interface {
	Notify(n Notification)
}

// Feed is a Notifier the browser can poll.
type Feed interface {
	Notifier
	Since(seq int) []Notification
}

// MemoryFeed keeps the most recent notifications in memory.
type MemoryFeed struct {
	mu      sync.RWMutex
	items   []Notification
	nextSeq int
	max     int
	now     func() time.Time
}

func NewMemoryFeed(max int) *MemoryFeed {
	if max <= 0 {
		max = 100
	}
	return &MemoryFeed{
		items:   make([]Notification, 0),
		nextSeq: 1,
		max:     max,
		now:     time.Now,
	}
}

func (f *MemoryFeed) Notify(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n.Seq = f.nextSeq
	f.nextSeq++
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Placement == "" {
		n.Placement = PlacementTop
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = f.now().UTC()
	}

	f.items = append(f.items, n)
	if over := len(f.items) - f.max; over > 0 {
		f.items = append([]Notification(nil), f.items[over:]...)
	}
}

// Since returns notifications with a sequence number greater than seq, oldest first.
func (f *MemoryFeed) Since(seq int) []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Notification, 0)
	for _, n := range f.items {
		if n.Seq > seq {
			out = append(out, n)
		}
	}
	return out
}

// Discard drops every notification. Useful where no toast layer exists.
type Discard struct{}

func (Discard) Notify(Notification) {}

func Info(msg, desc string) Notification {
	return Notification{Level: LevelInfo, Message: msg, Description: desc, Placement: PlacementTop}
}

func Success(msg, desc string) Notification {
	return Notification{Level: LevelSuccess, Message: msg, Description: desc, Placement: PlacementTop}
}

func Warning(msg, desc string) Notification {
	return Notification{Level: LevelWarning, Message: msg, Description: desc, Placement: PlacementTop}
}

func Error(msg, desc string) Notification {
	return Notification{Level: LevelError, Message: msg, Description: desc, Placement: PlacementTop}
}
