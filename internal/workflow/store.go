package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/notify"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/storage"
)

var (
	ErrNotFound     = errors.New("task not found")
	ErrNodeNotFound = errors.New("node not found")
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Store is the ordered, in-memory list of tasks and the single source of
// truth for them. Every mutation is written through to storage as a full
// list. Store is not safe for concurrent use; Workspace serializes access.
type Store struct {
	storage  storage.Storage
	notifier notify.Notifier
	logger   *log.Logger

	tasks      []model.Task
	activeID   int
	persistErr error
}

func NewStore(st storage.Storage, n notify.Notifier, logger *log.Logger) *Store {
	if n == nil {
		n = notify.Discard{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		storage:  st,
		notifier: n,
		logger:   logger,
		tasks:    []model.Task{},
	}
}

// Load replaces the in-memory list with the stored one.
func (s *Store) Load(ctx context.Context) error {
	tasks, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	s.tasks = tasks
	s.activeID = 0
	return nil
}

func (s *Store) Tasks() []model.Task {
	out := model.CloneTasks(s.tasks)
	if out == nil {
		out = []model.Task{}
	}
	return out
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Get(id int) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, ErrNotFound
	}
	return s.tasks[i].Clone(), nil
}

// ActiveID is the selected task, or 0 when none is.
func (s *Store) ActiveID() int { return s.activeID }

func (s *Store) Active() (model.Task, bool) {
	if s.activeID == 0 {
		return model.Task{}, false
	}
	t, err := s.Get(s.activeID)
	return t, err == nil
}

// PersistErr is the error of the most recent write, nil once a write succeeds.
func (s *Store) PersistErr() error { return s.persistErr }

// Create appends a fresh task built from the template and makes it active.
func (s *Store) Create(ctx context.Context) model.Task {
	t := BuildTask(s.nextID())
	s.tasks = append(s.tasks, t)
	s.activeID = t.ID
	s.persist(ctx)
	return t.Clone()
}

// Select makes id the active task. A Task Name node without details is
// seeded with an empty record so the form opens with blank fields.
func (s *Store) Select(ctx context.Context, id int) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, ErrNotFound
	}
	s.activeID = id

	t := s.tasks[i]
	if n, j, ok := t.NodeByRole(model.RoleTaskName); ok {
		if d, _ := n.Data.(model.TaskNameData); d.TaskDetails == nil {
			t = t.Clone()
			t.Nodes[j].Data = model.TaskNameData{TaskDetails: model.EmptyTaskDetails()}
			s.tasks[i] = t
			s.persist(ctx)
		}
	}

	s.notifier.Notify(notify.Info("Task Selected", fmt.Sprintf("You have selected Task: %d", id)))
	return s.tasks[i].Clone(), nil
}

// UpdateNode applies mutate to a copy of one node and swaps the task's node
// list for a new one holding the result.
func (s *Store) UpdateNode(ctx context.Context, taskID int, nodeID string, mutate func(*model.Node) error) (model.Task, error) {
	i := s.indexOf(taskID)
	if i < 0 {
		return model.Task{}, ErrNotFound
	}
	t := s.tasks[i].Clone()
	_, j, ok := t.NodeByID(nodeID)
	if !ok {
		return model.Task{}, fmt.Errorf("%s in task %d: %w", nodeID, taskID, ErrNodeNotFound)
	}
	n := t.Nodes[j]
	if err := mutate(&n); err != nil {
		return model.Task{}, err
	}
	t.Nodes[j] = n
	s.tasks[i] = t
	s.persist(ctx)
	return t.Clone(), nil
}

// Delete removes id once c confirms. Deleting the active task, or the last
// task, leaves nothing selected.
func (s *Store) Delete(ctx context.Context, id int, c Confirmer) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if c == nil || !c.Confirm("Are you sure you want to delete this task?") {
		return ErrNotConfirmed
	}

	next := make([]model.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	s.tasks = next
	if s.activeID == id || len(s.tasks) == 0 {
		s.activeID = 0
	}
	s.persist(ctx)

	s.notifier.Notify(notify.Success("Task Deleted", fmt.Sprintf("Task %d and its associated nodes have been deleted.", id)))
	return nil
}

// nextID is one past the highest id in use. With no deletions this is the
// task count plus one; after deletions it never hands out a live id.
func (s *Store) nextID() int {
	hi := len(s.tasks)
	for _, t := range s.tasks {
		if t.ID > hi {
			hi = t.ID
		}
	}
	return hi + 1
}

func (s *Store) indexOf(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full list. A failed write keeps memory authoritative
// and is surfaced as a warning; the next successful write catches up.
func (s *Store) persist(ctx context.Context) {
	err := s.storage.Save(ctx, s.tasks)
	if err == nil {
		if s.persistErr != nil {
			logEvent(s.logger, "info", "persist_recovered", map[string]any{"tasks": len(s.tasks)})
		}
		s.persistErr = nil
		return
	}

	first := s.persistErr == nil
	s.persistErr = err
	logEvent(s.logger, "warn", "persist_failed", map[string]any{
		"tasks": len(s.tasks),
		"error": err.Error(),
	})
	if first {
		s.notifier.Notify(notify.Warning(
			"Persistence unavailable",
			"Changes are kept for this session but could not be saved.",
		))
	}
}
