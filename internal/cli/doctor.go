package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/service"
)

func registerDoctor(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("doctor")
	cmd.SetDescription("Check the palette file and its history. Exit 0 if healthy, 1 if errors found.")

	ctx.DoctorFix, _ = ra.NewBool("fix").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Apply automatic fixes for issues with deterministic solutions").
		Register(cmd)

	ctx.DoctorJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print the report as JSON").
		Register(cmd)

	ctx.DoctorUsed, _ = parent.RegisterCmd(cmd)
}

func runDoctor(opts runOpts, fix bool, jsonOutput bool) {
	app := opts.app()

	report, err := app.DoctorService.Diagnose()
	if err != nil {
		Fatal(err)
	}

	if fix && len(report.Issues) > 0 {
		report, err = app.DoctorService.Fix(report)
		if err != nil {
			Fatal(err)
		}
	}

	if jsonOutput {
		if err := printJson(report); err != nil {
			Fatal(err)
		}
	} else {
		printDoctorReport(app.WorkspaceStore.Path(), report, fix)
	}

	// Exit with status 1 if there are errors
	if report.HasErrors() {
		os.Exit(1)
	}
}

func printDoctorReport(path string, report *service.DiagnosticReport, didFix bool) {
	fmt.Fprintf(stdout, "Checking %s...\n", RenderBold(path))
	if p := report.Palette; p != nil {
		fmt.Fprintf(stdout, "  Cells: %d, groups: %d\n", p.Cells, p.Groups)
		fmt.Fprintf(stdout, "  History: %d undo, %d redo\n", p.UndoDepth, p.RedoDepth)
	}
	fmt.Fprintln(stdout)

	fixedCount := 0
	if didFix {
		fixedCount = report.Summary.Fixed
	}
	if fixedCount > 0 {
		PrintSuccess("Fixed %d issue(s)", fixedCount)
		fmt.Fprintln(stdout)
	}

	if len(report.Issues) == 0 {
		if fixedCount == 0 {
			PrintSuccess("No issues found")
		} else {
			PrintSuccess("All issues resolved")
		}
		return
	}

	// Errors first, then warnings
	for _, severity := range []service.IssueSeverity{service.SeverityError, service.SeverityWarning} {
		for _, issue := range report.Issues {
			if issue.Severity == severity {
				printIssue(issue)
			}
		}
	}

	fmt.Fprintln(stdout)
	var summaryParts []string
	if report.Summary.Errors > 0 {
		summaryParts = append(summaryParts, StyleError.Render(fmt.Sprintf("%d error(s)", report.Summary.Errors)))
	}
	if report.Summary.Warnings > 0 {
		summaryParts = append(summaryParts, StyleWarning.Render(fmt.Sprintf("%d warning(s)", report.Summary.Warnings)))
	}
	if fixedCount > 0 {
		summaryParts = append(summaryParts, StyleSuccess.Render(fmt.Sprintf("%d fixed", fixedCount)))
	}
	if report.Summary.FixFailed > 0 {
		summaryParts = append(summaryParts, StyleError.Render(fmt.Sprintf("%d fix failed", report.Summary.FixFailed)))
	}
	fmt.Fprintf(stdout, "Summary: %s\n", strings.Join(summaryParts, ", "))

	if !didFix {
		for _, issue := range report.Issues {
			if issue.Fixable {
				fmt.Fprintln(stdout)
				PrintInfo("Run 'swatch doctor --fix' to apply automatic fixes")
				break
			}
		}
	}
}

func printIssue(issue service.Issue) {
	style := StyleWarning
	icon := IconWarning
	if issue.Severity == service.SeverityError {
		style = StyleError
		icon = IconError
	}

	fmt.Fprintf(stdout, "%s %s %s\n", style.Render(icon), style.Render(fmt.Sprintf("[%s]", issue.Code)), issue.Message)

	if issue.FixError != "" {
		fmt.Fprintf(stdout, "  %s Fix failed: %s\n", StyleError.Render(IconInfo), issue.FixError)
	} else if issue.FixAction != "" {
		if issue.Fixable {
			fmt.Fprintf(stdout, "  %s Fix: %s\n", RenderMuted(IconInfo), issue.FixAction)
		} else {
			fmt.Fprintf(stdout, "  %s %s\n", RenderMuted(IconInfo), issue.FixAction)
		}
	}
}
