package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/engine"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/palette"
	"github.com/amterp/swatch/internal/resolver"
	"github.com/amterp/swatch/internal/script"
	"github.com/amterp/swatch/internal/store"
)

// PaletteService runs scripts against the workspace palette, loading it and
// its history before and persisting both after.
type PaletteService struct {
	paths     *config.Paths
	workspace store.WorkspaceStore
	documents store.DocumentStore
	settings  store.SettingsStore
	logger    *slog.Logger
	newMeta   func() *model.Meta
}

// NewPaletteService creates a new palette service. newMeta stamps
// provenance on palettes created by new; it may be nil.
func NewPaletteService(
	paths *config.Paths,
	workspace store.WorkspaceStore,
	documents store.DocumentStore,
	settings store.SettingsStore,
	logger *slog.Logger,
	newMeta func() *model.Meta,
) *PaletteService {
	return &PaletteService{
		paths:     paths,
		workspace: workspace,
		documents: documents,
		settings:  settings,
		logger:    logger,
		newMeta:   newMeta,
	}
}

// Paths returns the resolved workspace paths.
func (s *PaletteService) Paths() *config.Paths {
	return s.paths
}

// Settings returns the project settings with defaults applied.
func (s *PaletteService) Settings() (*model.Settings, error) {
	return s.settings.Load()
}

// Create starts a fresh workspace with an empty palette. An existing palette
// is only replaced when force is set.
func (s *PaletteService) Create(ctx context.Context, force bool) error {
	if s.workspace.Exists() && !force {
		return swerr.State("a palette already exists at %s (use --force to replace it)", s.workspace.Path())
	}
	if !s.settings.Exists() {
		defaults := model.DefaultSettings()
		if err := s.settings.Save(&defaults); err != nil {
			return fmt.Errorf("failed to write default settings: %w", err)
		}
	}

	e := engine.New(engine.WithLogger(s.logger), engine.WithMetaFactory(s.newMeta))
	if _, err := e.Run(ctx, "", "new"); err != nil {
		return err
	}
	return s.persist(e)
}

// Open loads the workspace into a ready engine. renderer may be nil when the
// caller never lists or draws.
func (s *PaletteService) Open(renderer engine.Renderer) (*engine.Engine, error) {
	settings, err := s.settings.Load()
	if err != nil {
		return nil, err
	}
	ws, err := s.workspace.Load()
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithLogger(s.logger),
		engine.WithPersister(s.documents),
		engine.WithInsertPosition(settings.InsertPosition),
		engine.WithMetaFactory(s.newMeta),
	}
	if renderer != nil {
		opts = append(opts, engine.WithRenderer(renderer))
	}
	e := engine.New(opts...)
	if err := e.Restore(ws, s.workspace.Path()); err != nil {
		return nil, err
	}
	return e, nil
}

// Exec runs a script against the workspace. Commands that committed before
// a failure are persisted along with their history, matching what the
// engine holds in memory.
func (s *PaletteService) Exec(ctx context.Context, filename, src string, renderer engine.Renderer) (*engine.Report, error) {
	e, err := s.Open(renderer)
	if err != nil {
		return nil, err
	}

	report, runErr := e.Run(ctx, filename, src)
	if changed(report) {
		if err := s.persist(e); err != nil {
			return report, errors.Join(runErr, err)
		}
		s.logger.Debug("workspace saved", "path", s.workspace.Path(), "committed", report.Committed)
	}
	return report, runErr
}

// Check parses and validates a script without touching the workspace.
func (s *PaletteService) Check(filename, src string) (int, error) {
	return engine.Check(filename, src)
}

// Snapshot returns the cells a selector matches, in display order. An empty
// selector means every cell.
func (s *PaletteService) Snapshot(selector string) (palette.Snapshot, error) {
	sel, err := script.ParseSelector(selector)
	if err != nil {
		return palette.Snapshot{}, err
	}
	e, err := s.Open(nil)
	if err != nil {
		return palette.Snapshot{}, err
	}
	ids, err := resolver.NewCellResolver(e.Store()).Resolve(sel)
	if err != nil {
		return palette.Snapshot{}, err
	}
	return e.Store().Snapshot().Select(ids), nil
}

// Undo reverts up to n committed commands.
func (s *PaletteService) Undo(ctx context.Context, n int) (engine.Result, error) {
	return s.execOne(ctx, "undo "+strconv.Itoa(n))
}

// Redo reapplies up to n undone commands.
func (s *PaletteService) Redo(ctx context.Context, n int) (engine.Result, error) {
	return s.execOne(ctx, "redo "+strconv.Itoa(n))
}

// SaveAs writes the palette to a standalone document. Relative paths are
// resolved against the project root.
func (s *PaletteService) SaveAs(ctx context.Context, path string) (engine.Result, error) {
	return s.execOne(ctx, "save "+strconv.Quote(path))
}

// Load replaces the palette with a standalone document and clears history.
func (s *PaletteService) Load(ctx context.Context, path string) (engine.Result, error) {
	return s.execOne(ctx, "load "+strconv.Quote(path))
}

// execOne runs a single generated command and unwraps its failure, since
// the script position of a generated line means nothing to the caller.
func (s *PaletteService) execOne(ctx context.Context, line string) (engine.Result, error) {
	report, err := s.Exec(ctx, "", line, nil)
	if err != nil {
		var scriptErr *engine.ScriptError
		if errors.As(err, &scriptErr) {
			return engine.Result{}, scriptErr.Err
		}
		return engine.Result{}, err
	}
	return report.Results[0], nil
}

func (s *PaletteService) persist(e *engine.Engine) error {
	ws, err := e.Workspace()
	if err != nil {
		return fmt.Errorf("failed to encode workspace: %w", err)
	}
	return s.workspace.Save(ws)
}

func changed(report *engine.Report) bool {
	if report == nil {
		return false
	}
	for _, r := range report.Results {
		if r.Changed {
			return true
		}
	}
	return false
}
