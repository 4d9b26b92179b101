package workflow

import (
	"context"
	"log"
	"sync"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/config"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/notify"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/storage"
)

type Options struct {
	Storage  storage.Storage
	Notifier notify.Notifier
	Logger   *log.Logger
	Rules    config.Rules
	Clock    Clock
}

// GraphView is what the canvas renders.
type GraphView struct {
	ActiveTaskID int           `json:"activeTaskId"`
	Nodes        []RenderNode  `json:"nodes"`
	Edges        []model.Edge  `json:"edges"`
	Form         FormState     `json:"form"`
	Persistence  PersistStatus `json:"persistence"`
}

type PersistStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Workspace bundles the store, the canvas projection and the controller for
// one user. Calls are processed one at a time, in arrival order.
type Workspace struct {
	mu    sync.Mutex
	store *Store
	proj  *Projection
	ctrl  *Controller
}

// NewWorkspace loads the stored tasks. Nothing is displayed until a task is
// created or selected.
func NewWorkspace(ctx context.Context, opts Options) (*Workspace, error) {
	if opts.Storage == nil {
		opts.Storage = storage.NewMemoryStorage()
	}
	store := NewStore(opts.Storage, opts.Notifier, opts.Logger)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	proj := NewProjection(FillRule{RequireComplete: opts.Rules.ApprovalRequiresCompleteTaskDetails})
	return &Workspace{
		store: store,
		proj:  proj,
		ctrl:  NewController(store, proj, opts.Notifier, opts.Clock, opts.Rules),
	}, nil
}

func (w *Workspace) Tasks() []model.Task {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Tasks()
}

func (w *Workspace) Task(id int) (model.Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Get(id)
}

func (w *Workspace) CreateTask(ctx context.Context) model.Task {
	w.mu.Lock()
	defer w.mu.Unlock()

	t := w.store.Create(ctx)
	w.ctrl.CancelForm()
	w.proj.Project(t)
	return t
}

func (w *Workspace) SelectTask(ctx context.Context, id int) (model.Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, err := w.store.Select(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if w.ctrl.Form().TaskID != id {
		w.ctrl.CancelForm()
	}
	w.proj.Project(t)
	return t, nil
}

func (w *Workspace) DeleteTask(ctx context.Context, id int, c Confirmer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.store.Delete(ctx, id, c); err != nil {
		return err
	}
	if w.ctrl.Form().TaskID == id {
		w.ctrl.CancelForm()
	}
	if w.store.ActiveID() == 0 || w.proj.TaskID() == id {
		w.proj.Clear()
	}
	return nil
}

func (w *Workspace) Graph() GraphView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.graphLocked()
}

func (w *Workspace) graphLocked() GraphView {
	st := PersistStatus{OK: true}
	if err := w.store.PersistErr(); err != nil {
		st = PersistStatus{OK: false, Error: err.Error()}
	}
	return GraphView{
		ActiveTaskID: w.proj.TaskID(),
		Nodes:        w.proj.Nodes(),
		Edges:        w.proj.Edges(),
		Form:         w.ctrl.Form(),
		Persistence:  st,
	}
}

func (w *Workspace) ClickNode(ctx context.Context, nodeID string) (ClickResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctrl.Click(ctx, nodeID)
}

func (w *Workspace) MoveNode(nodeID string, pos model.Position) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.proj.Move(nodeID, pos)
}

func (w *Workspace) ConnectEdge(e model.Edge) (model.Edge, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.proj.Connect(e)
}

func (w *Workspace) SaveTaskForm(ctx context.Context, in TaskForm) (model.Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctrl.SaveTaskForm(ctx, in)
}

func (w *Workspace) SaveApprovalForm(ctx context.Context, in ApprovalForm) (model.Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctrl.SaveApprovalForm(ctx, in)
}

func (w *Workspace) CancelForm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctrl.CancelForm()
}

// PersistErr is the last storage failure, nil when storage is in sync.
func (w *Workspace) PersistErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.PersistErr()
}
