package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
)

func setupTestSettingsStore(t *testing.T) (*FileSettingsStore, string) {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".swatch"), 0755); err != nil {
		t.Fatalf("failed to create .swatch dir: %v", err)
	}
	return NewSettingsStore(config.NewPaths(dir)), dir
}

func TestFileSettingsStore_SaveAndLoad(t *testing.T) {
	store, _ := setupTestSettingsStore(t)

	cfg := &model.Settings{
		InsertPosition: model.InsertAtStart,
		GridColumns:    4,
		ExportCellSize: 16,
		LogLevel:       "debug",
	}
	if err := store.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.InsertPosition != model.InsertAtStart {
		t.Errorf("InsertPosition mismatch: got %q", loaded.InsertPosition)
	}
	if loaded.GridColumns != 4 || loaded.ExportCellSize != 16 {
		t.Errorf("Sizes mismatch: got columns=%d cell=%d", loaded.GridColumns, loaded.ExportCellSize)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("LogLevel mismatch: got %q", loaded.LogLevel)
	}
	if loaded.SwatchSchema != version.CurrentSettingsSchema() {
		t.Errorf("SwatchSchema mismatch: got %q, want %q", loaded.SwatchSchema, version.CurrentSettingsSchema())
	}
}

func TestFileSettingsStore_LoadReturnsDefaultsWhenMissing(t *testing.T) {
	store, _ := setupTestSettingsStore(t)

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != model.DefaultSettings() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestFileSettingsStore_LoadFillsUnsetKeys(t *testing.T) {
	store, dir := setupTestSettingsStore(t)

	raw := `swatch_schema = "settings/1"
grid_columns = 3
`
	if err := os.WriteFile(filepath.Join(dir, ".swatch", "config.toml"), []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GridColumns != 3 {
		t.Errorf("Expected grid_columns 3, got %d", cfg.GridColumns)
	}
	if cfg.InsertPosition != model.InsertAtEnd {
		t.Errorf("Expected default insert_position, got %q", cfg.InsertPosition)
	}
}

func TestFileSettingsStore_LoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"missing schema", "grid_columns = 3\n", "no schema version"},
		{"future schema", `swatch_schema = "settings/99"` + "\n", "requires swatch"},
		{"bad position", `swatch_schema = "settings/1"` + "\ninsert_position = \"middle\"\n", "insert_position"},
		{"not toml", "this is = = not toml", "invalid settings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, dir := setupTestSettingsStore(t)
			if err := os.WriteFile(filepath.Join(dir, ".swatch", "config.toml"), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := store.Load()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}
}

func TestFileSettingsStore_Exists(t *testing.T) {
	store, _ := setupTestSettingsStore(t)

	if store.Exists() {
		t.Error("Expected Exists() to return false before Save()")
	}
	defaults := model.DefaultSettings()
	if err := store.Save(&defaults); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists() {
		t.Error("Expected Exists() to return true after Save()")
	}
}

func TestFileSettingsStore_SavesValidTOML(t *testing.T) {
	store, dir := setupTestSettingsStore(t)

	defaults := model.DefaultSettings()
	if err := store.Save(&defaults); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".swatch", "config.toml"))
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	var parsed map[string]any
	if err := toml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Saved file is not valid TOML: %v", err)
	}
	if parsed["swatch_schema"] != version.CurrentSettingsSchema() {
		t.Errorf("swatch_schema = %v, want %q", parsed["swatch_schema"], version.CurrentSettingsSchema())
	}
	if parsed["insert_position"] != model.InsertAtEnd {
		t.Errorf("insert_position = %v, want %q", parsed["insert_position"], model.InsertAtEnd)
	}
}

func TestFileGlobalStore_SaveLoadAndEnsureExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	store := NewGlobalStoreAt(path)

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if cfg.Editor != "" {
		t.Errorf("Expected empty config, got %+v", cfg)
	}

	if err := store.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected config file to be created: %v", err)
	}

	if err := store.Save(&model.GlobalConfig{Editor: "nano", LogLevel: "info"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// EnsureExists must not clobber an existing file.
	if err := store.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Editor != "nano" || loaded.LogLevel != "info" {
		t.Errorf("Unexpected config after reload: %+v", loaded)
	}
	if loaded.SwatchSchema != version.CurrentGlobalSchema() {
		t.Errorf("SwatchSchema = %q, want %q", loaded.SwatchSchema, version.CurrentGlobalSchema())
	}
}

func TestFileGlobalStore_RejectsMissingSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("editor = \"vi\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewGlobalStoreAt(path).Load(); err == nil {
		t.Error("Expected schema error for file without swatch_schema")
	}
}
