package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current schema versions - bump these when making breaking changes.
//
// CHECKLIST when bumping a version:
//  1. Update the constant below
//  2. Add entry to MinSwatchVersion map (tested by TestMinSwatchVersionCompleteness)
//  3. Teach palette.FromDocument to read the previous layout
const (
	CurrentPaletteVersion  = 1
	CurrentSettingsVersion = 1
	CurrentGlobalVersion   = 1
)

// Schema type prefixes.
const (
	PaletteSchemaPrefix  = "palette/"
	SettingsSchemaPrefix = "settings/"
	GlobalSchemaPrefix   = "global/"
)

// MinSwatchVersion maps schema identifiers to the minimum swatch version
// required. Used to provide helpful upgrade messages for newer files.
var MinSwatchVersion = map[string]string{
	"palette/1":  "0.1.0",
	"settings/1": "0.1.0",
	"global/1":   "0.1.0",
}

// FormatPaletteSchema creates a palette schema string from a version number.
// Example: FormatPaletteSchema(1) returns "palette/1"
func FormatPaletteSchema(v int) string {
	return fmt.Sprintf("%s%d", PaletteSchemaPrefix, v)
}

// FormatSettingsSchema creates a settings schema string from a version number.
func FormatSettingsSchema(v int) string {
	return fmt.Sprintf("%s%d", SettingsSchemaPrefix, v)
}

// FormatGlobalSchema creates a global schema string from a version number.
func FormatGlobalSchema(v int) string {
	return fmt.Sprintf("%s%d", GlobalSchemaPrefix, v)
}

// ParsePaletteVersion extracts the version number from a palette schema string.
// Returns an error if the format is invalid.
func ParsePaletteVersion(schema string) (int, error) {
	return parseSchemaVersion(schema, PaletteSchemaPrefix, "palette")
}

// ParseSettingsVersion extracts the version number from a settings schema string.
func ParseSettingsVersion(schema string) (int, error) {
	return parseSchemaVersion(schema, SettingsSchemaPrefix, "settings")
}

// ParseGlobalVersion extracts the version number from a global schema string.
func ParseGlobalVersion(schema string) (int, error) {
	return parseSchemaVersion(schema, GlobalSchemaPrefix, "global")
}

func parseSchemaVersion(schema, prefix, schemaType string) (int, error) {
	if !strings.HasPrefix(schema, prefix) {
		return 0, fmt.Errorf("invalid %s schema format: %q (expected %sN)", schemaType, schema, prefix)
	}
	versionStr := strings.TrimPrefix(schema, prefix)
	v, err := strconv.Atoi(versionStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s schema version: %q", schemaType, versionStr)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid %s schema version: %d (must be >= 1)", schemaType, v)
	}
	return v, nil
}

// CurrentPaletteSchema returns the current palette schema string.
func CurrentPaletteSchema() string {
	return FormatPaletteSchema(CurrentPaletteVersion)
}

// CurrentSettingsSchema returns the current settings schema string.
func CurrentSettingsSchema() string {
	return FormatSettingsSchema(CurrentSettingsVersion)
}

// CurrentGlobalSchema returns the current global schema string.
func CurrentGlobalSchema() string {
	return FormatGlobalSchema(CurrentGlobalVersion)
}
