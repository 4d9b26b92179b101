package page

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowPage_RendersShell(t *testing.T) {
	var buf bytes.Buffer
	err := WorkflowPage(Settings{Title: "Team <Pipelines>", PollIntervalMS: 900}).Render(context.Background(), &buf)
	require.NoError(t, err)
	html := buf.String()

	assert.Contains(t, html, "<!doctype html>")
	assert.Contains(t, html, `data-poll-interval="900"`)
	assert.Contains(t, html, "Team &lt;Pipelines&gt;")
	assert.NotContains(t, html, "Team <Pipelines>")
	assert.Contains(t, html, `id="canvas"`)
	assert.Contains(t, html, `id="task-form"`)
	assert.Contains(t, html, `id="approval-form"`)
	assert.Contains(t, html, `<script src="/static/js/workflow.js" defer></script>`)
	assert.Contains(t, html, `class="nav-link active" href="/workflow"`)
	assert.Contains(t, html, `class="nav-link" href="/analytics"`)
}

func TestWorkflowPage_HasTaskDetailsPanel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WorkflowPage(Settings{}).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `<aside id="task-details" class="details-panel"><h2>Task details</h2>`)
	assert.Contains(t, html, `id="details-list"`)
	// dialogs render after the three columns
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`id="task-details"`)), bytes.Index(buf.Bytes(), []byte(`id="task-form"`)))
}

func TestPages_EscapeTitleInAttributesAndText(t *testing.T) {
	var buf bytes.Buffer
	s := Settings{Title: `"><script>alert(1)</script>`}
	require.NoError(t, WelcomePage(s).Render(context.Background(), &buf))
	html := buf.String()

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestPages_DefaultSettings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WelcomePage(Settings{}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<h1>Workflow Builder</h1>")
	assert.Contains(t, buf.String(), `data-poll-interval="1500"`)
	assert.Contains(t, buf.String(), "<title>Welcome · Workflow Builder</title>")

	buf.Reset()
	require.NoError(t, AnalyticsPage(Settings{}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `id="charts"`)
	assert.Contains(t, buf.String(), `/static/js/analytics.js`)
}
