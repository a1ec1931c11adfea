package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	Verbose        *bool

	// new command
	NewUsed  *bool
	NewForce *bool

	// exec command
	ExecUsed   *bool
	ExecScript *string

	// check command
	CheckUsed   *bool
	CheckScript *string

	// undo / redo commands
	UndoUsed  *bool
	UndoCount *int
	RedoUsed  *bool
	RedoCount *int

	// list command
	ListUsed     *bool
	ListSelector *string
	ListWatch    *bool
	ListJson     *bool

	// grid command
	GridUsed     *bool
	GridSelector *string
	GridColumns  *int
	GridWatch    *bool

	// export command
	ExportUsed     *bool
	ExportPath     *string
	ExportSelector *string
	ExportCellSize *int
	ExportColumns  *int
	ExportLabels   *bool

	// save / load commands
	SaveUsed *bool
	SavePath *string
	LoadUsed *bool
	LoadPath *string

	// doctor command
	DoctorUsed *bool
	DoctorFix  *bool
	DoctorJson *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("swatch")
	cmd.SetDescription("Scripted, undoable color palettes")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.Verbose, _ = ra.NewBool("verbose").
		SetShort("v").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Log each command at debug level").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerNew(cmd, ctx)
	registerExec(cmd, ctx)
	registerCheck(cmd, ctx)
	registerUndo(cmd, ctx)
	registerRedo(cmd, ctx)
	registerList(cmd, ctx)
	registerGrid(cmd, ctx)
	registerExport(cmd, ctx)
	registerSave(cmd, ctx)
	registerLoad(cmd, ctx)
	registerDoctor(cmd, ctx)
	registerCompletion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, root *ra.Cmd) {
	opts := runOpts{interactive: !*ctx.NonInteractive, verbose: *ctx.Verbose}

	switch {
	case *ctx.NewUsed:
		runNew(opts, *ctx.NewForce)

	case *ctx.ExecUsed:
		runExec(opts, *ctx.ExecScript)

	case *ctx.CheckUsed:
		runCheck(opts, *ctx.CheckScript)

	case *ctx.UndoUsed:
		runUndo(opts, *ctx.UndoCount)

	case *ctx.RedoUsed:
		runRedo(opts, *ctx.RedoCount)

	case *ctx.ListUsed:
		kind := viewList
		if *ctx.ListJson {
			kind = viewJson
		}
		runView(opts, kind, *ctx.ListSelector, 0, *ctx.ListWatch)

	case *ctx.GridUsed:
		runView(opts, viewGrid, *ctx.GridSelector, *ctx.GridColumns, *ctx.GridWatch)

	case *ctx.ExportUsed:
		runExport(opts, *ctx.ExportPath, *ctx.ExportSelector, *ctx.ExportCellSize, *ctx.ExportColumns, *ctx.ExportLabels)

	case *ctx.SaveUsed:
		runSave(opts, *ctx.SavePath)

	case *ctx.LoadUsed:
		runLoad(opts, *ctx.LoadPath)

	case *ctx.DoctorUsed:
		runDoctor(opts, *ctx.DoctorFix, *ctx.DoctorJson)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, root)
	}
}

// runOpts carries the global flags into each command.
type runOpts struct {
	interactive bool
	verbose     bool
}

func (o runOpts) app() *App {
	app, err := NewApp(o.interactive, o.verbose)
	if err != nil {
		Fatal(err)
	}
	return app
}

// workspaceApp is app() for commands that need an existing palette.
func (o runOpts) workspaceApp() *App {
	app := o.app()
	if err := app.RequireWorkspace(); err != nil {
		Fatal(err)
	}
	return app
}
