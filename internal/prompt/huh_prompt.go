package prompt

import (
	"os"

	"github.com/charmbracelet/huh"
)

// selectHeight caps the option list so long file listings scroll.
const selectHeight = 10

// HuhPrompter implements Prompter with charmbracelet/huh forms.
type HuhPrompter struct {
	accessible bool
}

// NewHuhPrompter creates a huh-based prompter. Setting ACCESSIBLE in the
// environment switches huh to plain line prompts for screen readers.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{accessible: os.Getenv("ACCESSIBLE") != ""}
}

func (p *HuhPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	answer := defaultValue
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&answer),
	)).WithAccessible(p.accessible).Run()
	return answer, err
}

func (p *HuhPrompter) Select(title string, options []string) (string, error) {
	var choice string
	field := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&choice)
	if len(options) > selectHeight {
		field = field.Height(selectHeight + 2).Filtering(true)
	}
	err := huh.NewForm(huh.NewGroup(field)).WithAccessible(p.accessible).Run()
	return choice, err
}
