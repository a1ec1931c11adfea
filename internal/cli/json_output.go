package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/amterp/swatch/internal/palette"
)

// cellJson is one cell as printed by 'swatch list --json'. Colors are
// always hex so scripts can feed them straight back into swatch.
type cellJson struct {
	Position int      `json:"position"`
	ID       int      `json:"id"`
	Color    string   `json:"color"`
	Name     string   `json:"name,omitempty"`
	Groups   []string `json:"groups,omitempty"`
}

// ListOutput wraps a snapshot for JSON output.
type ListOutput struct {
	Cells  []cellJson       `json:"cells"`
	Groups map[string][]int `json:"groups"`
}

// NewListOutput creates a ListOutput from a snapshot.
// Always returns empty collections (not null) and drops groups the
// selection emptied.
func NewListOutput(snap palette.Snapshot) ListOutput {
	cells := make([]cellJson, 0, len(snap.Cells))
	for _, c := range snap.Cells {
		cells = append(cells, cellJson{
			Position: c.Position,
			ID:       c.ID,
			Color:    c.Color.Hex(),
			Name:     c.Name,
			Groups:   snap.GroupsOf(c.ID),
		})
	}

	groups := make(map[string][]int)
	for _, name := range slices.Sorted(maps.Keys(snap.Groups)) {
		if members := snap.Groups[name]; len(members) > 0 {
			groups[name] = members
		}
	}
	return ListOutput{Cells: cells, Groups: groups}
}

func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(output))
	return nil
}
