package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amterp/swatch/internal/config"
)

// Result contains the discovered workspace.
type Result struct {
	ProjectRoot string // Absolute path to the directory holding .swatch/
	Initialized bool   // Whether .swatch/palette.json exists
}

// DiscoverWorkspace finds the workspace by walking up from cwd.
// Returns nil if no workspace is found.
func DiscoverWorkspace() (*Result, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return DiscoverWorkspaceFrom(cwd)
}

// DiscoverWorkspaceFrom finds the workspace starting from a given directory.
// A .swatch/ directory without a palette file still counts, so a workspace
// whose palette was removed is reported rather than skipped over for a
// parent's.
func DiscoverWorkspaceFrom(startDir string) (*Result, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	for {
		swatchDir := filepath.Join(dir, config.DefaultSwatchDir)
		if info, err := os.Stat(swatchDir); err == nil && info.IsDir() {
			_, statErr := os.Stat(filepath.Join(swatchDir, config.WorkspaceFileName))
			return &Result{
				ProjectRoot: dir,
				Initialized: statErr == nil,
			}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return nil, nil
		}
		dir = parent
	}
}
