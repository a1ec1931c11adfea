package cli

import (
	"context"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/engine"
)

func registerUndo(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("undo")
	cmd.SetDescription("Revert the last n committed commands")

	ctx.UndoCount, _ = ra.NewInt("count").
		SetOptional(true).
		SetDefault(1).
		SetUsage("How many commands to revert").
		Register(cmd)

	ctx.UndoUsed, _ = parent.RegisterCmd(cmd)
}

func registerRedo(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("redo")
	cmd.SetDescription("Reapply the last n undone commands")

	ctx.RedoCount, _ = ra.NewInt("count").
		SetOptional(true).
		SetDefault(1).
		SetUsage("How many commands to reapply").
		Register(cmd)

	ctx.RedoUsed, _ = parent.RegisterCmd(cmd)
}

func runUndo(opts runOpts, count int) {
	app := opts.workspaceApp()
	res, err := app.PaletteService.Undo(context.Background(), count)
	if err != nil {
		Fatal(err)
	}
	printResult(res)
}

func runRedo(opts runOpts, count int) {
	app := opts.workspaceApp()
	res, err := app.PaletteService.Redo(context.Background(), count)
	if err != nil {
		Fatal(err)
	}
	printResult(res)
}

func printResult(res engine.Result) {
	printResults(&engine.Report{Committed: 1, Results: []engine.Result{res}})
}
