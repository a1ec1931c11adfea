package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/creator"
	"github.com/amterp/swatch/internal/discovery"
	"github.com/amterp/swatch/internal/editor"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/git"
	"github.com/amterp/swatch/internal/id"
	"github.com/amterp/swatch/internal/logging"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/internal/util"
)

// App holds all the dependencies for the CLI.
// Uses interfaces for testability.
type App struct {
	GitClient      *git.Client
	GlobalStore    store.GlobalStore
	GlobalConfig   *model.GlobalConfig
	SettingsStore  store.SettingsStore
	WorkspaceStore store.WorkspaceStore
	Paths          *config.Paths
	Prompter       prompt.Prompter
	Editor         *editor.Editor
	Logger         *slog.Logger
	PaletteService *service.PaletteService
	DoctorService  *service.DoctorService
	ProjectRoot    string
	Initialized    bool
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
// Without a discovered workspace, the current directory becomes the project
// root so that 'swatch new' has somewhere to create one.
func NewApp(interactive, verbose bool) (*App, error) {
	gitClient := git.NewClient()
	globalStore := store.NewGlobalStore()

	// Load global config with warnings (don't silently ignore errors)
	globalCfg, err := globalStore.Load()
	if err != nil {
		PrintWarning("failed to load global config: %v", err)
		globalCfg = &model.GlobalConfig{}
	}

	result, err := discovery.DiscoverWorkspace()
	if err != nil {
		return nil, err
	}
	projectRoot := ""
	initialized := false
	if result != nil {
		projectRoot = result.ProjectRoot
		initialized = result.Initialized
	} else if projectRoot, err = os.Getwd(); err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	paths := config.NewPaths(projectRoot)
	settingsStore := store.NewSettingsStore(paths)
	workspaceStore := store.NewWorkspaceStore(paths)

	logger := logging.New(resolveLogLevel(globalCfg, settingsStore, verbose))

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	paletteService := service.NewPaletteService(
		paths,
		workspaceStore,
		store.NewDocumentStore(paths),
		settingsStore,
		logger,
		newMetaFactory(gitClient, logger),
	)
	doctorService := service.NewDoctorService(paths, workspaceStore, config.GlobalConfigPath())

	return &App{
		GitClient:      gitClient,
		GlobalStore:    globalStore,
		GlobalConfig:   globalCfg,
		SettingsStore:  settingsStore,
		WorkspaceStore: workspaceStore,
		Paths:          paths,
		Prompter:       prompter,
		Editor:         editor.NewEditor(globalCfg),
		Logger:         logger,
		PaletteService: paletteService,
		DoctorService:  doctorService,
		ProjectRoot:    projectRoot,
		Initialized:    initialized,
	}, nil
}

// resolveLogLevel picks the most specific configured level: --verbose, then
// project settings, then global config. Unreadable settings are left for
// the command itself to report.
func resolveLogLevel(global *model.GlobalConfig, settings store.SettingsStore, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	raw := global.LogLevel
	if cfg, err := settings.Load(); err == nil && cfg.LogLevel != "" {
		raw = cfg.LogLevel
	}
	level, err := logging.ParseLevel(raw)
	if err != nil {
		PrintWarning("%v", err)
	}
	return level
}

// newMetaFactory stamps provenance on palettes created by 'swatch new'.
// A missing creator is not worth failing over.
func newMetaFactory(names creator.NameSource, logger *slog.Logger) func() *model.Meta {
	return func() *model.Meta {
		name, err := creator.GetCreator(names)
		if err != nil {
			logger.Debug("no creator for palette metadata", "error", err)
		}
		return &model.Meta{
			ID:              id.Generate(),
			Creator:         name,
			CreatedAtMillis: util.NowMillis(),
		}
	}
}

// RequireWorkspace ensures a palette workspace exists for this project.
func (a *App) RequireWorkspace() error {
	if !a.Initialized || !a.WorkspaceStore.Exists() {
		return &swerr.NotInitializedError{Path: a.ProjectRoot}
	}
	return nil
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError("%v", err)
	os.Exit(1)
}
