package git

import (
	"os/exec"
	"strings"
)

// Client provides the few git lookups swatch needs.
type Client struct{}

// NewClient creates a new git client.
func NewClient() *Client {
	return &Client{}
}

// GetUserName returns the configured git user.name, or "" if git is
// unavailable or unconfigured.
func (c *Client) GetUserName() string {
	out, err := exec.Command("git", "config", "user.name").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
