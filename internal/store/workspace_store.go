package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/amterp/swatch/internal/config"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
)

// FileWorkspaceStore implements WorkspaceStore using the filesystem.
type FileWorkspaceStore struct {
	paths *config.Paths
}

// NewWorkspaceStore creates a new workspace store.
func NewWorkspaceStore(paths *config.Paths) *FileWorkspaceStore {
	return &FileWorkspaceStore{paths: paths}
}

// Path returns the workspace file location.
func (s *FileWorkspaceStore) Path() string {
	return s.paths.WorkspacePath()
}

// Load reads the workspace file. A missing file is NotInitializedError.
// Only the envelope is checked here; the engine validates the palette and
// decodes history when it restores the workspace.
func (s *FileWorkspaceStore) Load() (*model.Workspace, error) {
	path := s.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &swerr.NotInitializedError{Path: s.paths.ProjectRoot()}
		}
		return nil, fmt.Errorf("failed to read workspace: %w", err)
	}

	var ws model.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, &swerr.SerializationError{Path: path, Message: "invalid JSON", Err: err}
	}
	if err := version.CheckPaletteSchema(path, ws.Palette.Schema); err != nil {
		return nil, &swerr.SerializationError{Path: path, Message: "unsupported schema", Err: err}
	}
	return &ws, nil
}

// Save writes the workspace file, creating .swatch/ if needed.
func (s *FileWorkspaceStore) Save(ws *model.Workspace) error {
	// Stamp current schema version
	ws.Palette.Schema = version.CurrentPaletteSchema()

	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workspace: %w", err)
	}
	if err := os.MkdirAll(s.paths.SwatchRoot(), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", config.DefaultSwatchDir, err)
	}
	if err := os.WriteFile(s.Path(), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write workspace: %w", err)
	}
	return nil
}

// Exists returns true if the workspace file exists.
func (s *FileWorkspaceStore) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}
