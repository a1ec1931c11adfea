package model

import "encoding/json"

// Workspace is the active palette file kept in .swatch/palette.json: the
// palette plus its undo/redo log, so history survives between invocations.
type Workspace struct {
	Palette Document   `json:"palette"`
	History HistoryLog `json:"history"`
}

// HistoryLog holds encoded operations, oldest first on both stacks.
// Records are opaque here; internal/engine owns their encoding.
type HistoryLog struct {
	Undo []json.RawMessage `json:"undo"`
	Redo []json.RawMessage `json:"redo"`
}

// Empty reports whether no operations are recorded.
func (h HistoryLog) Empty() bool {
	return len(h.Undo) == 0 && len(h.Redo) == 0
}
