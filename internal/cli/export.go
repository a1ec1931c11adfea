package cli

import (
	"os"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/export"
)

func registerExport(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("export")
	cmd.SetDescription("Render the palette as a PNG swatch sheet")

	ctx.ExportPath, _ = ra.NewString("path").
		SetUsage("Destination .png file, or - for stdout").
		Register(cmd)

	ctx.ExportSelector, _ = ra.NewString("select").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only export cells matching this selector").
		SetCompletionFunc(completeSelectors).
		Register(cmd)

	ctx.ExportCellSize, _ = ra.NewInt("cell-size").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Tile edge in pixels (default: export_cell_size setting)").
		Register(cmd)

	ctx.ExportColumns, _ = ra.NewInt("columns").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Tiles per row (default: grid_columns setting)").
		Register(cmd)

	ctx.ExportLabels, _ = ra.NewBool("labels").
		SetShort("l").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print each tile's hex code on it").
		Register(cmd)

	ctx.ExportUsed, _ = parent.RegisterCmd(cmd)
}

func runExport(opts runOpts, path, selector string, cellSize, columns int, labels bool) {
	app := opts.workspaceApp()

	settings, err := app.PaletteService.Settings()
	if err != nil {
		Fatal(err)
	}
	sheet := export.Options{
		CellSize: settings.ExportCellSize,
		Columns:  settings.GridColumns,
		Labels:   labels,
	}
	if cellSize > 0 {
		sheet.CellSize = cellSize
	}
	if columns > 0 {
		sheet.Columns = columns
	}

	snap, err := app.PaletteService.Snapshot(selector)
	if err != nil {
		Fatal(err)
	}

	if path == "-" {
		if err := export.WritePNG(os.Stdout, snap, sheet); err != nil {
			Fatal(err)
		}
		return
	}

	dest := app.Paths.Resolve(path)
	if err := export.WriteFile(dest, snap, sheet); err != nil {
		Fatal(err)
	}
	PrintSuccess("Exported %d cell(s) to %s", len(snap.Cells), dest)
}
