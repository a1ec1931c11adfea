package editor

import (
	"os"
	"os/exec"
	"strings"

	"github.com/amterp/swatch/internal/model"
)

const defaultEditor = "vim"

// Editor handles editor resolution and invocation.
type Editor struct {
	globalConfig *model.GlobalConfig
}

// NewEditor creates a new Editor.
func NewEditor(globalConfig *model.GlobalConfig) *Editor {
	return &Editor{globalConfig: globalConfig}
}

// Resolve returns the editor command to use. Blank values count as unset.
// Order: global config > $EDITOR > vim
func (e *Editor) Resolve() string {
	if e.globalConfig != nil && strings.TrimSpace(e.globalConfig.Editor) != "" {
		return e.globalConfig.Editor
	}

	if editor := os.Getenv("EDITOR"); strings.TrimSpace(editor) != "" {
		return editor
	}

	return defaultEditor
}

// Edit opens the editor on a temporary script seeded with content and
// returns what the user saved.
func (e *Editor) Edit(content string) (string, error) {
	tmpFile, err := os.CreateTemp("", "swatch-edit-*.swatch")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", err
	}
	tmpFile.Close()

	// The configured editor may carry flags, e.g. "code --wait".
	parts := strings.Fields(e.Resolve())
	if len(parts) == 0 {
		parts = []string{defaultEditor}
	}
	cmd := exec.Command(parts[0], append(parts[1:], tmpPath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", err
	}

	return string(edited), nil
}
