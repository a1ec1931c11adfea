package model

import "testing"

func TestSettings_WithDefaults(t *testing.T) {
	s := Settings{GridColumns: 4}.WithDefaults()

	if s.GridColumns != 4 {
		t.Errorf("Expected explicit grid_columns kept, got %d", s.GridColumns)
	}
	if s.InsertPosition != InsertAtEnd {
		t.Errorf("Expected insert_position %q, got %q", InsertAtEnd, s.InsertPosition)
	}
	if s.ExportCellSize != 32 {
		t.Errorf("Expected export_cell_size 32, got %d", s.ExportCellSize)
	}
}

func TestDocument_MaxID(t *testing.T) {
	d := &Document{Cells: []CellRecord{{ID: 3}, {ID: 9}, {ID: 1}}}
	if got := d.MaxID(); got != 9 {
		t.Errorf("Expected max id 9, got %d", got)
	}

	empty := &Document{}
	if got := empty.MaxID(); got != 0 {
		t.Errorf("Expected max id 0 for empty document, got %d", got)
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"zero value", Settings{}, false},
		{"defaults", DefaultSettings(), false},
		{"start", Settings{InsertPosition: InsertAtStart}, false},
		{"unknown position", Settings{InsertPosition: "middle"}, true},
		{"negative columns", Settings{GridColumns: -1}, true},
		{"negative cell size", Settings{ExportCellSize: -8}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
