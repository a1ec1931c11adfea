// Package engine executes validated commands against a palette, turning each
// edit into one invertible operation recorded in history.
package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/history"
	"github.com/amterp/swatch/internal/logging"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/palette"
	"github.com/amterp/swatch/internal/resolver"
	"github.com/amterp/swatch/internal/script"
)

// Persister reads and writes standalone palette documents for save and load.
type Persister interface {
	SavePalette(path string, doc *model.Document) error
	LoadPalette(path string) (*model.Document, error)
}

// Renderer displays palette snapshots. It never sees the live store.
type Renderer interface {
	List(snap palette.Snapshot) error
	Grid(snap palette.Snapshot) error
}

// Result describes one executed command.
type Result struct {
	Verb    string
	Message string
	// Notice is a non-fatal problem, such as an undo that ran out of history.
	Notice error
	// Changed reports whether the palette or its history was modified.
	Changed bool
}

// Engine bundles a palette with its history. It is not safe for concurrent
// use; callers serialize access.
type Engine struct {
	store     *palette.Store
	history   *history.History
	logger    *slog.Logger
	persister Persister
	renderer  Renderer
	insertAt  string
	newMeta   func() *model.Meta
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPersister configures the backend for save and load.
func WithPersister(p Persister) Option {
	return func(e *Engine) {
		e.persister = p
	}
}

// WithRenderer configures the display for list and grid.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithInsertPosition sets where insert places a cell when no position is
// given: model.InsertAtEnd (default) or model.InsertAtStart.
func WithInsertPosition(where string) Option {
	return func(e *Engine) {
		e.insertAt = where
	}
}

// WithMetaFactory stamps provenance on palettes created by new.
func WithMetaFactory(fn func() *model.Meta) Option {
	return func(e *Engine) {
		e.newMeta = fn
	}
}

// New creates an engine over an empty palette.
func New(opts ...Option) *Engine {
	e := &Engine{
		store:    palette.New(),
		history:  history.New(),
		logger:   logging.NewNop(),
		renderer: nopRenderer{},
		insertAt: model.InsertAtEnd,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the live palette. Callers must not mutate it directly.
func (e *Engine) Store() *palette.Store {
	return e.store
}

// History returns the undo/redo log.
func (e *Engine) History() *history.History {
	return e.history
}

// Exec runs one validated command.
func (e *Engine) Exec(cmd script.Command) (Result, error) {
	e.logger.Debug("exec", "verb", cmd.Verb(), "pos", cmd.Pos().String())
	res := Result{Verb: cmd.Verb()}
	r := resolver.NewCellResolver(e.store)

	switch c := cmd.(type) {
	case *script.New:
		e.store = palette.New()
		if e.newMeta != nil {
			e.store.SetMeta(e.newMeta())
		}
		e.history.Clear()
		res.Message = "Created empty palette"
		res.Changed = true
		return res, nil

	case *script.Insert:
		rank := e.store.Len()
		if e.insertAt == model.InsertAtStart {
			rank = 0
		}
		if c.Position != nil {
			rank = min(*c.Position, e.store.Len())
		}
		op := &insertOp{Cell: palette.Cell{ID: e.store.NextID(), Color: c.Color, Name: c.Name}, Rank: rank}
		return e.commit(res, op)

	case *script.Delete:
		ids, err := r.ResolveAny(c.Target)
		if err != nil {
			return res, err
		}
		return e.commit(res, &deleteOp{IDs: ids})

	case *script.Move:
		ids, err := r.ResolveAny(c.Target)
		if err != nil {
			return res, err
		}
		before := e.store.Order()
		after := moveBlock(before, ids, c.To)
		if slices.Equal(before, after) {
			res.Message = fmt.Sprintf("%s already in place; nothing changed", c.Target)
			return res, nil
		}
		return e.commit(res, &reorderOp{Before: before, After: after})

	case *script.Rename:
		id, err := r.ResolveOne(c.Target)
		if err != nil {
			return res, err
		}
		cell, _ := e.store.Cell(id)
		return e.commit(res, &renameOp{ID: id, Old: cell.Name, New: c.Name})

	case *script.Set:
		ids, err := r.Resolve(c.Target)
		if err != nil {
			return res, err
		}
		if len(ids) == 0 {
			res.Message = fmt.Sprintf("%s matched no cells; nothing changed", c.Target)
			return res, nil
		}
		return e.commit(res, e.buildSet(c, ids))

	case *script.Group:
		ids, err := r.ResolveAny(c.Target)
		if err != nil {
			return res, err
		}
		existing, exists := e.store.Group(c.Name)
		op := &groupAddOp{Name: c.Name, Created: !exists}
		for _, id := range ids {
			if !slices.Contains(existing, id) {
				op.Added = append(op.Added, id)
			}
		}
		if exists && len(op.Added) == 0 {
			res.Message = fmt.Sprintf("%s already in @%s; nothing changed", c.Target, c.Name)
			return res, nil
		}
		return e.commit(res, op)

	case *script.Ungroup:
		members, ok := e.store.Group(c.Name)
		if !ok {
			return res, swerr.Unresolved("@"+c.Name, "no such group")
		}
		return e.commit(res, &ungroupOp{Name: c.Name, Members: members})

	case *script.Undo:
		return e.undoRedo(res, "undo", c.Count, e.history.Undo)

	case *script.Redo:
		return e.undoRedo(res, "redo", c.Count, e.history.Redo)

	case *script.Save:
		if e.persister == nil {
			return res, swerr.State("save is not available here")
		}
		if err := e.persister.SavePalette(c.Path, e.store.ToDocument()); err != nil {
			return res, err
		}
		res.Message = fmt.Sprintf("Saved %s to %s", plural(e.store.Len(), "cell"), c.Path)
		return res, nil

	case *script.Load:
		if e.persister == nil {
			return res, swerr.State("load is not available here")
		}
		doc, err := e.persister.LoadPalette(c.Path)
		if err != nil {
			return res, err
		}
		loaded, err := palette.FromDocument(doc, c.Path)
		if err != nil {
			return res, err
		}
		e.store = loaded
		e.history.Clear()
		res.Message = fmt.Sprintf("Loaded %s from %s", plural(loaded.Len(), "cell"), c.Path)
		res.Changed = true
		return res, nil

	case *script.List:
		snap, err := e.snapshot(r, c.Target)
		if err != nil {
			return res, err
		}
		return res, e.renderer.List(snap)

	case *script.Grid:
		snap, err := e.snapshot(r, c.Target)
		if err != nil {
			return res, err
		}
		return res, e.renderer.Grid(snap)
	}
	panic(fmt.Sprintf("unhandled command %T", cmd))
}

func (e *Engine) commit(res Result, op history.Operation) (Result, error) {
	if err := e.history.Execute(e.store, op); err != nil {
		return res, err
	}
	e.logger.Debug("applied", "op", op.Describe())
	res.Message = capitalize(op.Describe())
	res.Changed = true
	return res, nil
}

func (e *Engine) buildSet(c *script.Set, ids []int) *setColorsOp {
	op := &setColorsOp{Attr: string(c.Attr), IDs: ids}
	for _, id := range ids {
		cell, _ := e.store.Cell(id)
		next := cell.Color
		switch c.Attr {
		case script.AttrColor:
			next = c.Color
		case script.AttrHue:
			next = cell.Color.WithHue(c.Amount)
		case script.AttrSaturation:
			next = cell.Color.WithSaturation(c.Amount)
		case script.AttrLightness:
			next = cell.Color.WithLightness(c.Amount)
		}
		op.Old = append(op.Old, cell.Color)
		op.New = append(op.New, next)
	}
	return op
}

func (e *Engine) undoRedo(res Result, action string, n int, step func(*palette.Store, int) (int, error)) (Result, error) {
	if n == 0 {
		res.Message = fmt.Sprintf("Nothing to %s", action)
		return res, nil
	}
	done, err := step(e.store, n)
	if err != nil && !swerr.IsHistory(err) {
		return res, err
	}
	if err != nil {
		e.logger.Info("history exhausted", "action", action, "requested", n, "performed", done)
		res.Notice = err
	}
	res.Changed = done > 0
	switch done {
	case 0:
		res.Message = fmt.Sprintf("No %s operations recorded", action)
	case 1:
		res.Message = fmt.Sprintf("%s operation completed", capitalize(action))
	default:
		res.Message = fmt.Sprintf("%d %s operations performed", done, action)
	}
	return res, nil
}

func (e *Engine) snapshot(r *resolver.CellResolver, sel script.Selector) (palette.Snapshot, error) {
	ids, err := r.Resolve(sel)
	if err != nil {
		return palette.Snapshot{}, err
	}
	return e.store.Snapshot().Select(ids), nil
}

type nopRenderer struct{}

func (nopRenderer) List(palette.Snapshot) error { return nil }
func (nopRenderer) Grid(palette.Snapshot) error { return nil }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
