package config

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	Version       string        `yaml:"version" json:"version"`
	Server        Server        `yaml:"server" json:"server"`
	Storage       Storage       `yaml:"storage" json:"storage"`
	Rules         Rules         `yaml:"rules" json:"rules"`
	Notifications Notifications `yaml:"notifications" json:"notifications"`
	UI            UIConfig      `yaml:"ui" json:"ui"`
}

type Server struct {
	Addr      string `yaml:"addr" json:"addr"`
	DataDir   string `yaml:"data_dir" json:"data_dir"`
	StaticDir string `yaml:"static_dir" json:"static_dir"`
}

type Storage struct {
	Backend     string `yaml:"backend" json:"backend"`
	Key         string `yaml:"key" json:"key"`
	DatabaseURL string `yaml:"database_url" json:"-"`
}

// Rules tune the workflow business rules.
type Rules struct {
	// When true the approval guard and the node colors treat task details as
	// filled only once every required field has a value. Otherwise a present
	// record counts as filled.
	ApprovalRequiresCompleteTaskDetails bool `yaml:"approval_requires_complete_task_details" json:"approval_requires_complete_task_details"`
	ApprovalCommentRequired             bool `yaml:"approval_comment_required" json:"approval_comment_required"`
}

type Notifications struct {
	MaxKept int `yaml:"max_kept" json:"max_kept"`
}

type UIConfig struct {
	Title        string `yaml:"title" json:"title"`
	PollInterval int    `yaml:"poll_interval_ms" json:"poll_interval_ms"`
}

func Default() *Config {
	c := &Config{Version: "1"}
	c.ApplyDefaults()
	return c
}

func (s *Server) ApplyDefaults() {
	if strings.TrimSpace(s.Addr) == "" {
		s.Addr = ":8080"
	}
	if strings.TrimSpace(s.DataDir) == "" {
		s.DataDir = "data"
	}
	if strings.TrimSpace(s.StaticDir) == "" {
		s.StaticDir = "static"
	}
}

func (s *Storage) ApplyDefaults() {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	if s.Backend == "" {
		s.Backend = BackendFile
	}
	if strings.TrimSpace(s.Key) == "" {
		s.Key = "tasks"
	}
}

func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Storage.ApplyDefaults()
	if c.Notifications.MaxKept <= 0 {
		c.Notifications.MaxKept = 100
	}
	if strings.TrimSpace(c.UI.Title) == "" {
		c.UI.Title = "Workflow Builder"
	}
	if c.UI.PollInterval <= 0 {
		c.UI.PollInterval = 1500
	}
}

// Validate checks combinations the defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(c.Storage.DatabaseURL) == "" {
			return errors.New("storage.database_url is required for the postgres backend")
		}
	default:
		return errors.New("unknown storage.backend: " + c.Storage.Backend)
	}
	return nil
}

// Load reads path, applies environment overrides and defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	var r Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &r); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}
	ApplyEnv(&r)
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}
