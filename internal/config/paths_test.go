package config

import (
	"path/filepath"
	"testing"
)

func TestPaths_Layout(t *testing.T) {
	p := NewPaths("/proj")

	if got := p.WorkspacePath(); got != filepath.Join("/proj", ".swatch", "palette.json") {
		t.Errorf("WorkspacePath = %q", got)
	}
	if got := p.SettingsPath(); got != filepath.Join("/proj", ".swatch", "config.toml") {
		t.Errorf("SettingsPath = %q", got)
	}
	if got := p.ScratchPath(); got != filepath.Join("/proj", ".swatch", "scripts") {
		t.Errorf("ScratchPath = %q", got)
	}
}

func TestPaths_Resolve(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := NewPaths("/proj")

	tests := []struct {
		in   string
		want string
	}{
		{"p.json", filepath.Join("/proj", "p.json")},
		{"./out/p.yaml", filepath.Join("/proj", "out", "p.yaml")},
		{"../shared.toml", filepath.Join("/", "shared.toml")},
		{"/abs/p.json", "/abs/p.json"},
		{"~/p.json", filepath.Join(home, "p.json")},
	}
	for _, tt := range tests {
		if got := p.Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
