package store

import "github.com/amterp/swatch/internal/model"

// WorkspaceStore handles the active palette file in .swatch/.
type WorkspaceStore interface {
	Load() (*model.Workspace, error)
	Save(ws *model.Workspace) error
	Exists() bool
	Path() string
}

// DocumentStore reads and writes standalone palette documents.
// It satisfies engine.Persister.
type DocumentStore interface {
	SavePalette(path string, doc *model.Document) error
	LoadPalette(path string) (*model.Document, error)
}

// SettingsStore handles project-level settings persistence.
type SettingsStore interface {
	Load() (*model.Settings, error)
	Save(settings *model.Settings) error
	Exists() bool
}

// GlobalStore handles global config persistence.
type GlobalStore interface {
	Load() (*model.GlobalConfig, error)
	Save(config *model.GlobalConfig) error
	EnsureExists() error
}
