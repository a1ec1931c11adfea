package version

import (
	"fmt"
)

// SchemaVersionError indicates a schema version problem during file read/write.
type SchemaVersionError struct {
	FileType    string // "palette", "settings", "global config"
	FilePath    string // Path to the problematic file
	Found       string // What was found (e.g., "missing", "palette/2")
	Expected    string // What was expected (e.g., "palette/1")
	MinRequired string // Minimum swatch version required (if upgrade needed)
}

func (e *SchemaVersionError) Error() string {
	if e.MinRequired != "" {
		return fmt.Sprintf(
			"%s schema version %s requires swatch >= %s (file: %s, supports up to: %s)",
			e.FileType, e.Found, e.MinRequired, e.FilePath, e.Expected,
		)
	}
	if e.Found == "missing" {
		return fmt.Sprintf("%s has no schema version (file: %s)", e.FileType, e.FilePath)
	}
	return fmt.Sprintf(
		"%s has invalid schema version: found %s, expected %s (file: %s)",
		e.FileType, e.Found, e.Expected, e.FilePath,
	)
}

// CheckPaletteSchema validates a palette document's schema stamp.
func CheckPaletteSchema(path, found string) error {
	return check("palette", path, found, CurrentPaletteSchema(), CurrentPaletteVersion, ParsePaletteVersion)
}

// CheckSettingsSchema validates a project settings file's schema stamp.
func CheckSettingsSchema(path, found string) error {
	return check("settings", path, found, CurrentSettingsSchema(), CurrentSettingsVersion, ParseSettingsVersion)
}

// CheckGlobalSchema validates the global config's schema stamp.
func CheckGlobalSchema(path, found string) error {
	return check("global config", path, found, CurrentGlobalSchema(), CurrentGlobalVersion, ParseGlobalVersion)
}

func check(fileType, path, found, expected string, current int, parse func(string) (int, error)) error {
	if found == "" {
		return &SchemaVersionError{FileType: fileType, FilePath: path, Found: "missing", Expected: expected}
	}
	if found == expected {
		return nil
	}
	e := &SchemaVersionError{FileType: fileType, FilePath: path, Found: found, Expected: expected}
	// Newer than we understand: point at the release that introduced it
	if v, err := parse(found); err == nil && v > current {
		if minSwatch, ok := MinSwatchVersion[found]; ok {
			e.MinRequired = minSwatch
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}
