package engine

import (
	"bytes"
	"encoding/json"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/history"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/palette"
)

// Workspace captures the palette and its history for persistence.
func (e *Engine) Workspace() (*model.Workspace, error) {
	undo, redo := e.history.Stacks()
	undoRecs, err := EncodeOps(undo)
	if err != nil {
		return nil, err
	}
	redoRecs, err := EncodeOps(redo)
	if err != nil {
		return nil, err
	}
	return &model.Workspace{
		Palette: *e.store.ToDocument(),
		History: model.HistoryLog{Undo: undoRecs, Redo: redoRecs},
	}, nil
}

// Restore replaces the engine state with a persisted workspace. Everything
// is decoded and validated first; on error the engine is unchanged.
func (e *Engine) Restore(ws *model.Workspace, path string) error {
	s, h, err := decodeWorkspace(ws, path)
	if err != nil {
		return err
	}
	e.store = s
	e.history = h
	return nil
}

func decodeWorkspace(ws *model.Workspace, path string) (*palette.Store, *history.History, error) {
	s, err := palette.FromDocument(&ws.Palette, path)
	if err != nil {
		return nil, nil, err
	}
	undo, err := DecodeOps(ws.History.Undo)
	if err != nil {
		return nil, nil, &swerr.SerializationError{Path: path, Message: "undo history", Err: err}
	}
	redo, err := DecodeOps(ws.History.Redo)
	if err != nil {
		return nil, nil, &swerr.SerializationError{Path: path, Message: "redo history", Err: err}
	}
	return s, history.Restore(undo, redo), nil
}

// VerifyHistory replays a workspace's history on a scratch copy: every
// recorded operation is undone and redone, then every pending redo is redone
// and undone. Each pass must succeed and land back on the saved palette.
func VerifyHistory(ws *model.Workspace, path string) error {
	s, h, err := decodeWorkspace(ws, path)
	if err != nil {
		return err
	}
	want, err := json.Marshal(s.ToDocument())
	if err != nil {
		return err
	}

	depth, pending := h.Depths()
	passes := []struct {
		name  string
		first func(*palette.Store, int) (int, error)
		then  func(*palette.Store, int) (int, error)
		n     int
	}{
		{"undo history", h.Undo, h.Redo, depth},
		{"redo history", h.Redo, h.Undo, pending},
	}
	for _, p := range passes {
		if _, err := p.first(s, p.n); err != nil {
			return &swerr.SerializationError{Path: path, Message: p.name + " does not replay", Err: err}
		}
		if _, err := p.then(s, p.n); err != nil {
			return &swerr.SerializationError{Path: path, Message: p.name + " does not replay", Err: err}
		}
		got, err := json.Marshal(s.ToDocument())
		if err != nil {
			return err
		}
		if !bytes.Equal(want, got) {
			return swerr.Corrupt(path, "%s does not reproduce the palette", p.name)
		}
	}
	return nil
}
