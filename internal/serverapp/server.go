package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/analytics"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/config"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/httpmw"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/notify"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/storage"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/workflow"
	staticfiles "github.com/singhdivyam772/workflow-builder-assignment/static"
	"github.com/singhdivyam772/workflow-builder-assignment/ui/page"
)

const maxBodyBytes = 1 << 20

type Options struct {
	Config        *config.Config
	StaticDir     string
	UseDiskStatic bool
	Logger        *log.Logger

	// Storage overrides the backend named in Config.
	Storage storage.Storage
	Clock   workflow.Clock
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = opts.Config.Server.StaticDir
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	cfg := opts.Config

	if opts.Storage == nil {
		st, _, err := OpenStorage(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		opts.Storage = st
	}

	feed := notify.NewMemoryFeed(cfg.Notifications.MaxKept)
	ws, err := workflow.NewWorkspace(context.Background(), workflow.Options{
		Storage:  opts.Storage,
		Notifier: feed,
		Logger:   opts.Logger,
		Rules:    cfg.Rules,
		Clock:    opts.Clock,
	})
	if err != nil {
		return nil, err
	}
	logJSON(opts.Logger, map[string]any{
		"level":   "info",
		"msg":     "workspace_loaded",
		"backend": cfg.Storage.Backend,
		"tasks":   len(ws.Tasks()),
	})

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "workflow-builder",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if _, err := opts.Storage.Load(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "task storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":          true,
			"service":     "workflow-builder",
			"persistence": ws.PersistErr() == nil,
			"time":        time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := &routeRegistry{mux: mux}
	get, post := []string{http.MethodGet}, []string{http.MethodPost}

	wf := workflow.NewHandler(ws)
	api.handle("/api/tasks", []string{http.MethodGet, http.MethodPost}, "list tasks or create one from the template", wf.TasksRoot)
	api.handle("/api/tasks/", []string{http.MethodGet, http.MethodPost, http.MethodDelete}, "get, select (/select) or delete (?confirm=true) a task", wf.TasksSub)
	api.handle("/api/graph", get, "nodes, edges and open form of the displayed task", wf.GraphRoot)
	api.handle("/api/graph/", []string{http.MethodPost, http.MethodPut}, "click or move a node, draw an edge", wf.GraphSub)
	api.handle("/api/forms/", post, "save the task or approval form, or cancel it", wf.Forms)

	api.handle("/api/notifications", get, "toasts newer than ?after=<seq>", notify.NewHandler(feed).List)
	api.handle("/api/analytics", get, "sample chart datasets", analytics.NewHandler(analytics.SamplePanel()).Root)

	mux.HandleFunc("/api/routes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.list())
	})

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})

	settings := page.Settings{Title: cfg.UI.Title, PollIntervalMS: cfg.UI.PollInterval}
	welcome := templ.Handler(page.WelcomePage(settings))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		welcome.ServeHTTP(w, r)
	})
	mux.Handle("/workflow", templ.Handler(page.WorkflowPage(settings)))
	mux.Handle("/analytics", templ.Handler(page.AnalyticsPage(settings)))

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger, httpmw.Quiet("/api/notifications", "/healthz")),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
		httpmw.WithBodyLimit(maxBodyBytes),
	), nil
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("WORKFLOW_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logJSON(logger *log.Logger, payload map[string]any) {
	if logger == nil {
		return
	}
	payload["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	logger.Print(string(b))
}
