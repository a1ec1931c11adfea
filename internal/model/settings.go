package model

import "fmt"

// Insert position policies for insert commands without an explicit position.
const (
	InsertAtEnd   = "end"
	InsertAtStart = "start"
)

// Settings represents the per-workspace configuration.
// Stored at .swatch/config.toml
// Schema changes require a version bump, see internal/version/version.go.
type Settings struct {
	SwatchSchema   string `toml:"swatch_schema"`
	InsertPosition string `toml:"insert_position,omitempty"`
	GridColumns    int    `toml:"grid_columns,omitempty"`
	ExportCellSize int    `toml:"export_cell_size,omitempty"`
	LogLevel       string `toml:"log_level,omitempty"`
}

// DefaultSettings returns the settings written by 'swatch new'.
func DefaultSettings() Settings {
	return Settings{
		InsertPosition: InsertAtEnd,
		GridColumns:    8,
		ExportCellSize: 32,
	}
}

// WithDefaults fills unset fields from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	if s.InsertPosition == "" {
		s.InsertPosition = d.InsertPosition
	}
	if s.GridColumns <= 0 {
		s.GridColumns = d.GridColumns
	}
	if s.ExportCellSize <= 0 {
		s.ExportCellSize = d.ExportCellSize
	}
	return s
}

// Validate reports settings values that can never be honored.
func (s Settings) Validate() error {
	switch s.InsertPosition {
	case "", InsertAtEnd, InsertAtStart:
	default:
		return fmt.Errorf("insert_position must be %q or %q, got %q", InsertAtEnd, InsertAtStart, s.InsertPosition)
	}
	if s.GridColumns < 0 {
		return fmt.Errorf("grid_columns must not be negative, got %d", s.GridColumns)
	}
	if s.ExportCellSize < 0 {
		return fmt.Errorf("export_cell_size must not be negative, got %d", s.ExportCellSize)
	}
	return nil
}
