package status

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"comfyhost/helpers"
	"comfyhost/settings"
	"comfyhost/workflow"
)

const cacheFor = 3 * time.Second

type DirectoryStatus struct {
	Workflows bool `json:"workflows"`
	Models    bool `json:"models"`
	Media     bool `json:"media"`
}

type StatusResponse struct {
	Uptime        string          `json:"uptime"`
	StartedAt     time.Time       `json:"started_at"`
	Directories   DirectoryStatus `json:"directories"`
	WorkflowCount int             `json:"workflow_count"`
	Error         string          `json:"error,omitempty"`
}

// Client reports on the directories the server is configured to expose.
type Client struct {
	paths   settings.PathsConfig
	store   *workflow.Store
	started time.Time
	now     func() time.Time

	mu              sync.Mutex
	cachedStatus    *StatusResponse
	statusCacheTime time.Time
}

// NewClient creates a new status client
func NewClient(paths settings.PathsConfig, store *workflow.Store, started time.Time) *Client {
	return &Client{
		paths:   paths,
		store:   store,
		started: started,
		now:     time.Now,
	}
}

// GetStatus returns the current status, reusing the last one for a few seconds.
func (c *Client) GetStatus() *StatusResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.cachedStatus != nil && now.Sub(c.statusCacheTime) < cacheFor {
		cached := *c.cachedStatus
		cached.Uptime = helpers.HumanDuration(now.Sub(c.started))
		return &cached
	}

	status := StatusResponse{
		Uptime:    helpers.HumanDuration(now.Sub(c.started)),
		StartedAt: c.started,
		Directories: DirectoryStatus{
			Workflows: isDir(c.paths.Workflows),
			Models:    isDir(c.paths.Models),
			Media:     c.paths.Media != "" && isDir(c.paths.Media),
		},
	}

	entries, err := c.store.List()
	if err != nil {
		status.Error = err.Error()
	} else {
		status.WorkflowCount = len(entries)
	}

	c.cachedStatus = &status
	c.statusCacheTime = now
	result := status
	return &result
}

// GetFormattedStatus returns the status as log friendly lines
func (c *Client) GetFormattedStatus() string {
	status := c.GetStatus()

	format := func(name, path string, ok bool) string {
		if path == "" {
			return fmt.Sprintf(" • %s: not configured", name)
		}
		if ok {
			return fmt.Sprintf(" • %s: %s", name, path)
		}
		return fmt.Sprintf(" • %s: %s (missing)", name, path)
	}

	lines := []string{
		format("Workflows", c.paths.Workflows, status.Directories.Workflows),
		format("Models", c.paths.Models, status.Directories.Models),
		format("Media", c.paths.Media, status.Directories.Media),
		fmt.Sprintf(" • %d workflows found, up %s", status.WorkflowCount, status.Uptime),
	}
	return strings.Join(lines, "\n")
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
