package editor

import (
	"testing"

	"github.com/amterp/swatch/internal/model"
)

func TestEditor_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		global *model.GlobalConfig
		env    string
		want   string
	}{
		{"global config wins", &model.GlobalConfig{Editor: "nano"}, "emacs", "nano"},
		{"env when config empty", &model.GlobalConfig{}, "emacs", "emacs"},
		{"nil config", nil, "code --wait", "code --wait"},
		{"default", nil, "", "vim"},
		{"blank config falls through", &model.GlobalConfig{Editor: "  \t"}, "emacs", "emacs"},
		{"blank config and env", &model.GlobalConfig{Editor: " "}, "   ", "vim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.env)
			if got := NewEditor(tt.global).Resolve(); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEditor_EditReturnsSavedContent(t *testing.T) {
	// "true" leaves the seeded file untouched.
	e := NewEditor(&model.GlobalConfig{Editor: "true"})

	got, err := e.Edit("insert red\n")
	if err != nil {
		t.Skipf("no 'true' binary available: %v", err)
	}
	if got != "insert red\n" {
		t.Errorf("Edit() = %q, want seeded content", got)
	}
}
