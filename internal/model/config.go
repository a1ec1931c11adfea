package model

// GlobalConfig represents the user's global swatch configuration.
// Stored at ~/.config/swatch/config.toml
// Schema changes require a version bump, see internal/version/version.go.
type GlobalConfig struct {
	SwatchSchema string `toml:"swatch_schema"`
	Editor       string `toml:"editor,omitempty"`
	LogLevel     string `toml:"log_level,omitempty"`
}
