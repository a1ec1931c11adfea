package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amterp/swatch/internal/config"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
)

func TestFileWorkspaceStore_SaveAndLoad(t *testing.T) {
	root := t.TempDir()
	store := NewWorkspaceStore(config.NewPaths(root))

	if store.Exists() {
		t.Fatal("Expected no workspace before Save()")
	}

	ws := &model.Workspace{
		Palette: *sampleDocument(),
		History: model.HistoryLog{
			Undo: []json.RawMessage{json.RawMessage(`{"op":"insert","data":{"rank":0}}`)},
		},
	}
	if err := store.Save(ws); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists() {
		t.Fatal("Expected workspace after Save()")
	}
	if store.Path() != filepath.Join(root, ".swatch", "palette.json") {
		t.Errorf("Unexpected workspace path %q", store.Path())
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Palette.Schema != version.CurrentPaletteSchema() {
		t.Errorf("Expected schema stamp, got %q", loaded.Palette.Schema)
	}
	if diff := cmp.Diff(ws.Palette, loaded.Palette); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
	if len(loaded.History.Undo) != 1 || len(loaded.History.Redo) != 0 {
		t.Errorf("Unexpected history depths: %d/%d", len(loaded.History.Undo), len(loaded.History.Redo))
	}
}

func TestFileWorkspaceStore_LoadMissingIsNotInitialized(t *testing.T) {
	store := NewWorkspaceStore(config.NewPaths(t.TempDir()))

	_, err := store.Load()
	var notInit *swerr.NotInitializedError
	if !errors.As(err, &notInit) {
		t.Errorf("Expected NotInitializedError, got %v", err)
	}
}

func TestFileWorkspaceStore_LoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{"},
		{"missing schema", `{"palette": {"cells": [], "groups": {}, "next_id": 1}}`},
		{"future schema", `{"palette": {"schema": "palette/7", "cells": [], "groups": {}, "next_id": 1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			dir := filepath.Join(root, ".swatch")
			if err := os.MkdirAll(dir, 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(dir, "palette.json"), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := NewWorkspaceStore(config.NewPaths(root)).Load()
			if !swerr.IsSerialization(err) {
				t.Errorf("Expected SerializationError, got %v", err)
			}
		})
	}
}
