package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultSwatchDir  = ".swatch"
	WorkspaceFileName = "palette.json"
	ConfigFileName    = "config.toml"
	GlobalConfigDir   = ".config/swatch"
	ScratchDir        = "scripts"
)

// Paths provides path resolution for swatch data files.
type Paths struct {
	projectRoot string
}

// NewPaths creates a new Paths resolver for the given project root.
func NewPaths(projectRoot string) *Paths {
	return &Paths{projectRoot: projectRoot}
}

// ProjectRoot returns the directory that contains .swatch/.
func (p *Paths) ProjectRoot() string {
	return p.projectRoot
}

// SwatchRoot returns the root directory for swatch data.
func (p *Paths) SwatchRoot() string {
	return filepath.Join(p.projectRoot, DefaultSwatchDir)
}

// WorkspacePath returns the active palette file, history included.
func (p *Paths) WorkspacePath() string {
	return filepath.Join(p.SwatchRoot(), WorkspaceFileName)
}

// SettingsPath returns the project settings file.
func (p *Paths) SettingsPath() string {
	return filepath.Join(p.SwatchRoot(), ConfigFileName)
}

// ScratchPath returns where editor-composed scripts are kept.
func (p *Paths) ScratchPath() string {
	return filepath.Join(p.SwatchRoot(), ScratchDir)
}

// Resolve makes a script-relative path absolute against the project root.
// Absolute paths and ~/ paths pass through (the latter expanded).
func (p *Paths) Resolve(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.projectRoot, path)
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}
