package store

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
)

// FileSettingsStore implements SettingsStore using the filesystem.
type FileSettingsStore struct {
	paths *config.Paths
}

// NewSettingsStore creates a new settings store.
func NewSettingsStore(paths *config.Paths) *FileSettingsStore {
	return &FileSettingsStore{paths: paths}
}

// Load reads the project settings, filling unset keys with defaults.
// Returns the defaults if the file doesn't exist.
func (s *FileSettingsStore) Load() (*model.Settings, error) {
	path := s.paths.SettingsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			defaults := model.DefaultSettings()
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var cfg model.Settings
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	// Strict version validation (only if file exists)
	if err := version.CheckSettingsSchema(path, cfg.SwatchSchema); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	cfg = cfg.WithDefaults()
	return &cfg, nil
}

// Save writes the project settings to disk.
func (s *FileSettingsStore) Save(cfg *model.Settings) error {
	// Stamp current schema version
	cfg.SwatchSchema = version.CurrentSettingsSchema()

	if err := os.MkdirAll(s.paths.SwatchRoot(), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", config.DefaultSwatchDir, err)
	}

	f, err := os.Create(s.paths.SettingsPath())
	if err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if the settings file exists.
func (s *FileSettingsStore) Exists() bool {
	_, err := os.Stat(s.paths.SettingsPath())
	return err == nil
}
