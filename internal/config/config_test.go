package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "tasks", cfg.Storage.Key)
	assert.Equal(t, 100, cfg.Notifications.MaxKept)
	assert.False(t, cfg.Rules.ApprovalRequiresCompleteTaskDetails)
}

func TestLoad_ParsesYAMLAndEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow_config.yml")
	body := `
version: "2"
server:
  addr: ":9000"
  data_dir: /var/lib/workflow
storage:
  backend: Memory
  key: board
rules:
  approval_requires_complete_task_details: true
  approval_comment_required: true
ui:
  title: Team Pipelines
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("WORKFLOW_ADDR", ":7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2", cfg.Version)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "/var/lib/workflow", cfg.Server.DataDir)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "board", cfg.Storage.Key)
	assert.True(t, cfg.Rules.ApprovalRequiresCompleteTaskDetails)
	assert.True(t, cfg.Rules.ApprovalCommentRequired)
	assert.Equal(t, "Team Pipelines", cfg.UI.Title)
}

func TestLoad_PostgresNeedsURL(t *testing.T) {
	t.Setenv("WORKFLOW_STORAGE", "postgres")
	t.Setenv("WORKFLOW_DATABASE_URL", "")
	_, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	assert.Error(t, err)

	t.Setenv("WORKFLOW_DATABASE_URL", "postgres://localhost/workflow")
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("WORKFLOW_STORAGE", "redis")
	_, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	assert.Error(t, err)
}
