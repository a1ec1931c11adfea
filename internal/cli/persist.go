package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/store"
)

func registerSave(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("save")
	cmd.SetDescription("Write the palette to a .json, .toml or .yaml file")

	ctx.SavePath, _ = ra.NewString("path").
		SetUsage("Destination file; the extension picks the format").
		Register(cmd)

	ctx.SaveUsed, _ = parent.RegisterCmd(cmd)
}

func registerLoad(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("load")
	cmd.SetDescription("Replace the palette with a saved file, clearing history")

	ctx.LoadPath, _ = ra.NewString("path").
		SetOptional(true).
		SetUsage("Palette file (prompts among files in the project root if omitted)").
		Register(cmd)

	ctx.LoadUsed, _ = parent.RegisterCmd(cmd)
}

func runSave(opts runOpts, path string) {
	app := opts.workspaceApp()
	res, err := app.PaletteService.SaveAs(context.Background(), path)
	if err != nil {
		Fatal(err)
	}
	PrintSuccess("%s", res.Message)
}

func runLoad(opts runOpts, path string) {
	app := opts.workspaceApp()

	if path == "" {
		candidates, err := paletteFiles(app)
		if err != nil {
			Fatal(err)
		}
		if len(candidates) == 0 {
			Fatal(errors.New("no palette files in project root (pass a path)"))
		}
		if path, err = app.Prompter.Select("Load which palette?", candidates); err != nil {
			Fatal(err)
		}
	}

	res, err := app.PaletteService.Load(context.Background(), path)
	if err != nil {
		Fatal(err)
	}
	PrintSuccess("%s", res.Message)
}

// paletteFiles lists files in the project root that decode as palettes.
func paletteFiles(app *App) ([]string, error) {
	entries, err := os.ReadDir(app.ProjectRoot)
	if err != nil {
		return nil, err
	}
	exts := store.Extensions()
	docs := store.NewDocumentStore(app.Paths)
	var files []string
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(exts, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		// Skip package.json and friends
		if _, err := docs.LoadPalette(e.Name()); err != nil {
			app.Logger.Debug("not a palette", "file", e.Name(), "error", err)
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}
