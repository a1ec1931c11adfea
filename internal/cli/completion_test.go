package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/palette"
	"github.com/amterp/swatch/internal/version"
)

func completionStore(t *testing.T) *palette.Store {
	t.Helper()
	doc := &model.Document{
		Schema: version.CurrentPaletteSchema(),
		Cells: []model.CellRecord{
			{ID: 1, Color: "#ff0000", Name: "accent", Position: 0},
			{ID: 2, Color: "#00ff00", Position: 1},
			{ID: 3, Color: "#0000ff", Name: "ash", Position: 2},
		},
		Groups: map[string][]int{"all": {1, 2, 3}, "warm": {1}},
		NextID: 4,
	}
	st, err := palette.FromDocument(doc, "test.json")
	if err != nil {
		t.Fatalf("FromDocument failed: %v", err)
	}
	return st
}

func TestSelectorCandidates(t *testing.T) {
	st := completionStore(t)

	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"*", "accent", "ash", "@all", "@warm"}},
		{"a", []string{"accent", "ash"}},
		{"ac", []string{"accent"}},
		{"@", []string{"@all", "@warm"}},
		{"@w", []string{"@warm"}},
		{"*", []string{"*"}},
		{"zz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got := selectorCandidates(st, tt.prefix)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("selectorCandidates(%q) mismatch (-want +got):\n%s", tt.prefix, diff)
			}
		})
	}
}
