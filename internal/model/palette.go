package model

// Document is the persisted form of a palette.
// Schema changes require a version bump, see internal/version/version.go.
type Document struct {
	Schema string           `json:"schema" toml:"schema" yaml:"schema"`
	Meta   *Meta            `json:"meta,omitempty" toml:"meta,omitempty" yaml:"meta,omitempty"`
	Cells  []CellRecord     `json:"cells" toml:"cells" yaml:"cells"`
	Groups map[string][]int `json:"groups" toml:"groups" yaml:"groups"`
	NextID int              `json:"next_id" toml:"next_id" yaml:"next_id"`
}

// CellRecord is one persisted palette cell. Color holds the hex form; it is
// parsed and validated when the document is loaded into a store.
type CellRecord struct {
	ID       int    `json:"id" toml:"id" yaml:"id"`
	Color    string `json:"color" toml:"color" yaml:"color"`
	Name     string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Position int    `json:"position" toml:"position" yaml:"position"`
}

// Meta describes where a palette came from. Informational only.
type Meta struct {
	ID              string `json:"id" toml:"id" yaml:"id"`
	Creator         string `json:"creator,omitempty" toml:"creator,omitempty" yaml:"creator,omitempty"`
	CreatedAtMillis int64  `json:"created_at_millis" toml:"created_at_millis" yaml:"created_at_millis"`
}

// MaxID returns the largest cell id in the document, or 0 when empty.
func (d *Document) MaxID() int {
	max := 0
	for _, c := range d.Cells {
		if c.ID > max {
			max = c.ID
		}
	}
	return max
}
