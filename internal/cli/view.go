package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/render"
	"github.com/amterp/swatch/internal/watch"
)

type viewKind int

const (
	viewList viewKind = iota
	viewGrid
	viewJson
)

func registerList(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("List cells with their colors, names and groups")

	ctx.ListSelector, _ = ra.NewString("selector").
		SetOptional(true).
		SetUsage("Index, range (a..b), name, @group or * (default: all)").
		SetCompletionFunc(completeSelectors).
		Register(cmd)

	ctx.ListWatch, _ = ra.NewBool("watch").
		SetShort("w").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Re-render whenever the palette changes").
		Register(cmd)

	ctx.ListJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print cells as JSON").
		Register(cmd)

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

func registerGrid(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("grid")
	cmd.SetDescription("Draw cells as colored tiles")

	ctx.GridSelector, _ = ra.NewString("selector").
		SetOptional(true).
		SetUsage("Index, range (a..b), name, @group or * (default: all)").
		SetCompletionFunc(completeSelectors).
		Register(cmd)

	ctx.GridColumns, _ = ra.NewInt("columns").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Tiles per row (default: grid_columns setting)").
		Register(cmd)

	ctx.GridWatch, _ = ra.NewBool("watch").
		SetShort("w").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Re-render whenever the palette changes").
		Register(cmd)

	ctx.GridUsed, _ = parent.RegisterCmd(cmd)
}

func runView(opts runOpts, kind viewKind, selector string, columns int, watchChanges bool) {
	app := opts.workspaceApp()

	draw := func() error {
		settings, err := app.PaletteService.Settings()
		if err != nil {
			return err
		}
		cols := columns
		if cols <= 0 {
			cols = settings.GridColumns
		}
		snap, err := app.PaletteService.Snapshot(selector)
		if err != nil {
			return err
		}
		r := render.New(stdout, render.WithColumns(cols))
		switch kind {
		case viewGrid:
			return r.Grid(snap)
		case viewJson:
			return printJson(NewListOutput(snap))
		}
		return r.List(snap)
	}

	if err := draw(); err != nil {
		Fatal(err)
	}
	if !watchChanges {
		return
	}

	fw, err := watch.NewFileWatcher(app.Paths, watch.WithLogger(app.Logger))
	if err != nil {
		Fatal(err)
	}
	changes := make(chan watch.FileChange, 1)
	fw.Subscribe(watch.SubscriberFunc(func(c watch.FileChange) {
		// Drop bursts; one redraw covers them
		select {
		case changes <- c:
		default:
		}
	}))
	if err := fw.Start(); err != nil {
		Fatal(err)
	}
	defer fw.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	PrintInfo("Watching %s (Ctrl-C to stop)", app.Paths.SwatchRoot())
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-changes:
			if c.Type == watch.FileChangeDeleted {
				PrintWarning("%s was removed", c.Path)
				continue
			}
			io.WriteString(stdout, "\n"+RenderMuted("updated "+time.Now().Format("15:04:05"))+"\n")
			// A half-written file is normal mid-save; the next event redraws
			if err := draw(); err != nil {
				PrintWarning("%v", err)
			}
		}
	}
}
