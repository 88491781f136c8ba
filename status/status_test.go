package status

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comfyhost/settings"
	"comfyhost/workflow"
)

func TestGetStatus(t *testing.T) {
	workflows := t.TempDir()
	models := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workflows, "a.json"), []byte("{}"), 0600))

	paths := settings.PathsConfig{Workflows: workflows, Models: models, Media: filepath.Join(models, "missing")}
	started := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := started.Add(90 * time.Second)

	client := NewClient(paths, workflow.NewStore(workflows), started)
	client.now = func() time.Time { return now }

	status := client.GetStatus()
	assert.Equal(t, "1 minute 30 seconds", status.Uptime)
	assert.Equal(t, DirectoryStatus{Workflows: true, Models: true, Media: false}, status.Directories)
	assert.Equal(t, 1, status.WorkflowCount)

	// cached: a new workflow is not seen, but uptime keeps moving
	require.NoError(t, os.WriteFile(filepath.Join(workflows, "b.json"), []byte("{}"), 0600))
	now = now.Add(time.Second)
	status = client.GetStatus()
	assert.Equal(t, 1, status.WorkflowCount)
	assert.Equal(t, "1 minute 31 seconds", status.Uptime)

	now = now.Add(cacheFor)
	assert.Equal(t, 2, client.GetStatus().WorkflowCount)
}

func TestGetFormattedStatus(t *testing.T) {
	workflows := t.TempDir()
	paths := settings.PathsConfig{Workflows: workflows, Models: filepath.Join(workflows, "nope")}

	client := NewClient(paths, workflow.NewStore(workflows), time.Now())
	out := client.GetFormattedStatus()

	assert.Contains(t, out, "Workflows: "+workflows)
	assert.Contains(t, out, "(missing)")
	assert.Contains(t, out, "Media: not configured")
	assert.Contains(t, out, "0 workflows found")
}
