package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/util"
)

func registerNew(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("new")
	cmd.SetDescription("Start an empty palette in .swatch/, clearing history")

	ctx.NewForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Replace an existing palette without asking").
		Register(cmd)

	ctx.NewUsed, _ = parent.RegisterCmd(cmd)
}

func runNew(opts runOpts, force bool) {
	app := opts.app()

	if !force && app.WorkspaceStore.Exists() {
		replace, err := app.Prompter.Confirm("A palette already exists here. Replace it?", false)
		if err != nil && opts.interactive {
			Fatal(err)
		}
		if !replace && opts.interactive {
			fmt.Fprintln(stdout, "Kept existing palette")
			return
		}
		// Non-interactive: fall through and let the service refuse
		force = replace
	}

	if err := app.PaletteService.Create(context.Background(), force); err != nil {
		Fatal(err)
	}

	rel, err := filepath.Rel(app.ProjectRoot, app.Paths.WorkspacePath())
	if err != nil {
		rel = app.Paths.WorkspacePath()
	}
	e, err := app.PaletteService.Open(nil)
	if err != nil {
		Fatal(err)
	}
	if meta := e.Store().Meta(); meta != nil {
		PrintSuccess("Created palette %s in %s", RenderID(meta.ID), rel)
		if meta.Creator != "" {
			PrintInfo("by %s on %s", meta.Creator, util.FormatMillis(meta.CreatedAtMillis))
		}
		return
	}
	PrintSuccess("Created palette in %s", rel)
}
