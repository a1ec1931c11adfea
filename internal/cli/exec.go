package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/engine"
	"github.com/amterp/swatch/internal/render"
	"github.com/amterp/swatch/internal/util"
)

const scratchTemplate = `# Write swatch commands, one per line. Save and quit to run them.
# insert <color> [name=<name>] [at=<position>]   delete <selector>
# move <selector> <position>   rename <selector> <name>
# set <selector> <color|hue|saturation|lightness> <value>
# group <name> <selector>   ungroup <name>
# undo [n]   redo [n]   list [selector]   grid [selector]
`

func registerExec(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("exec")
	cmd.SetDescription("Run a script against the palette ('-' reads stdin; no argument opens an editor)")

	ctx.ExecScript, _ = ra.NewString("script").
		SetOptional(true).
		SetUsage("Script file, or - for stdin").
		Register(cmd)

	ctx.ExecUsed, _ = parent.RegisterCmd(cmd)
}

func registerCheck(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("check")
	cmd.SetDescription("Parse and validate a script without running it")

	ctx.CheckScript, _ = ra.NewString("script").
		SetUsage("Script file, or - for stdin").
		Register(cmd)

	ctx.CheckUsed, _ = parent.RegisterCmd(cmd)
}

func runExec(opts runOpts, scriptPath string) {
	app := opts.workspaceApp()

	filename, src, err := readScript(app, scriptPath, opts.interactive)
	if err != nil {
		Fatal(err)
	}
	if strings.TrimSpace(src) == "" {
		fmt.Fprintln(stdout, "Nothing to run")
		return
	}

	settings, err := app.PaletteService.Settings()
	if err != nil {
		Fatal(err)
	}
	renderer := render.New(stdout, render.WithColumns(settings.GridColumns))

	// Ctrl-C stops the script between commands; what ran is still saved.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := app.PaletteService.Exec(ctx, filename, src, renderer)
	printResults(report)
	if err != nil {
		Fatal(err)
	}
}

func runCheck(opts runOpts, scriptPath string) {
	app := opts.app()

	filename, src, err := readScript(app, scriptPath, false)
	if err != nil {
		Fatal(err)
	}

	n, err := app.PaletteService.Check(filename, src)
	if err != nil {
		Fatal(fmt.Errorf("%w (%d valid command(s) before it)", err, n))
	}
	PrintSuccess("%s: %d command(s) OK", filename, n)
}

// readScript returns the script source and the name used in error
// positions. An empty path opens the editor on a scratch script kept under
// .swatch/scripts.
func readScript(app *App, path string, interactive bool) (string, string, error) {
	switch path {
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	case "":
		if !interactive {
			return "", "", errors.New("no script given (pass a file or - for stdin)")
		}
		return editScratch(app)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read script: %w", err)
	}
	return path, string(data), nil
}

func editScratch(app *App) (string, string, error) {
	src, err := app.Editor.Edit(scratchTemplate)
	if err != nil {
		return "", "", fmt.Errorf("editor failed: %w", err)
	}

	// Keep what was run so a failed script can be fixed and rerun.
	dir := app.Paths.ScratchPath()
	name := filepath.Join(dir, fmt.Sprintf("%d.swatch", util.NowMillis()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		app.Logger.Warn("failed to keep scratch script", "error", err)
		return "<editor>", src, nil
	}
	if err := os.WriteFile(name, []byte(src), 0644); err != nil {
		app.Logger.Warn("failed to keep scratch script", "error", err)
		return "<editor>", src, nil
	}
	return name, src, nil
}

// printResults reports each committed command that has something to say.
func printResults(report *engine.Report) {
	if report == nil {
		return
	}
	for _, res := range report.Results {
		if res.Notice != nil {
			PrintWarning("%s: %v", res.Verb, res.Notice)
		}
		if res.Message != "" {
			PrintInfo("%s", res.Message)
		}
	}
}
