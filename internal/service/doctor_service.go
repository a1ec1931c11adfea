package service

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/engine"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/palette"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/internal/version"
)

// IssueSeverity indicates how critical an issue is.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue codes for diagnostic results.
const (
	// Palette integrity (errors)
	CodeMissingWorkspace   = "MISSING_WORKSPACE"
	CodeMalformedWorkspace = "MALFORMED_WORKSPACE"
	CodeInvalidPalette     = "INVALID_PALETTE"
	CodeBrokenHistory      = "BROKEN_HISTORY"

	// Config issues (warnings)
	CodeMalformedSettings     = "MALFORMED_SETTINGS"
	CodeMalformedGlobalConfig = "MALFORMED_GLOBAL_CONFIG"
)

// Issue represents a single diagnostic finding.
type Issue struct {
	Severity  IssueSeverity `json:"severity"`
	Code      string        `json:"code"`
	Message   string        `json:"message"`
	Fixable   bool          `json:"fixable"`
	FixAction string        `json:"fix_action,omitempty"`
	FixError  string        `json:"fix_error,omitempty"` // Populated if fix was attempted but failed
}

// PaletteDiagnostic contains stats for the workspace palette.
type PaletteDiagnostic struct {
	Cells     int `json:"cells"`
	Groups    int `json:"groups"`
	UndoDepth int `json:"undo_depth"`
	RedoDepth int `json:"redo_depth"`
}

// ReportSummary summarizes the diagnostic results.
type ReportSummary struct {
	Errors    int `json:"errors"`
	Warnings  int `json:"warnings"`
	Fixed     int `json:"fixed"`
	FixFailed int `json:"fix_failed,omitempty"`
}

// DiagnosticReport contains all diagnostic results.
type DiagnosticReport struct {
	Palette *PaletteDiagnostic `json:"palette,omitempty"`
	Issues  []Issue            `json:"issues"`
	Summary ReportSummary      `json:"summary"`
}

// HasErrors returns true if there are any error-level issues.
func (r *DiagnosticReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

func (r *DiagnosticReport) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

func (r *DiagnosticReport) summarize() {
	r.Summary.Errors, r.Summary.Warnings = 0, 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			r.Summary.Errors++
		} else {
			r.Summary.Warnings++
		}
	}
}

// DoctorService validates swatch data for consistency issues.
type DoctorService struct {
	paths      *config.Paths
	workspace  store.WorkspaceStore
	globalPath string
}

// NewDoctorService creates a new diagnostic service. globalPath may be empty
// to skip the global config check.
func NewDoctorService(paths *config.Paths, workspace store.WorkspaceStore, globalPath string) *DoctorService {
	return &DoctorService{paths: paths, workspace: workspace, globalPath: globalPath}
}

// Diagnose checks the workspace file, its history and the config files.
func (s *DoctorService) Diagnose() (*DiagnosticReport, error) {
	report := &DiagnosticReport{Issues: []Issue{}}

	s.checkWorkspace(report)
	s.checkSettings(report)
	s.checkGlobalConfig(report)

	report.summarize()
	return report, nil
}

// Fix applies automatic fixes for issues that have deterministic solutions.
// Returns a new report showing remaining issues and what was fixed.
func (s *DoctorService) Fix(report *DiagnosticReport) (*DiagnosticReport, error) {
	fixed := 0
	fixFailed := 0
	remaining := []Issue{}

	for _, issue := range report.Issues {
		if !issue.Fixable {
			remaining = append(remaining, issue)
			continue
		}

		var err error
		switch issue.Code {
		case CodeBrokenHistory:
			err = s.fixBrokenHistory()
		default:
			remaining = append(remaining, issue)
			continue
		}

		if err != nil {
			issue.FixError = err.Error()
			remaining = append(remaining, issue)
			fixFailed++
		} else {
			fixed++
		}
	}

	newReport := &DiagnosticReport{
		Palette: report.Palette,
		Issues:  remaining,
		Summary: ReportSummary{Fixed: fixed, FixFailed: fixFailed},
	}
	newReport.summarize()
	return newReport, nil
}

func (s *DoctorService) checkWorkspace(report *DiagnosticReport) {
	path := s.workspace.Path()
	if !s.workspace.Exists() {
		report.add(Issue{
			Severity:  SeverityError,
			Code:      CodeMissingWorkspace,
			Message:   fmt.Sprintf("No palette file at %s", path),
			FixAction: "Run 'swatch new' to create one",
		})
		return
	}

	ws, err := s.workspace.Load()
	if err != nil {
		report.add(Issue{
			Severity: SeverityError,
			Code:     CodeMalformedWorkspace,
			Message:  err.Error(),
		})
		return
	}

	st, err := palette.FromDocument(&ws.Palette, path)
	if err != nil {
		report.add(Issue{
			Severity: SeverityError,
			Code:     CodeInvalidPalette,
			Message:  err.Error(),
		})
		return
	}
	report.Palette = &PaletteDiagnostic{
		Cells:     st.Len(),
		Groups:    len(st.GroupNames()),
		UndoDepth: len(ws.History.Undo),
		RedoDepth: len(ws.History.Redo),
	}

	if err := engine.VerifyHistory(ws, path); err != nil {
		report.add(Issue{
			Severity:  SeverityError,
			Code:      CodeBrokenHistory,
			Message:   err.Error(),
			Fixable:   true,
			FixAction: "Clear undo/redo history, keeping the current palette",
		})
	}
}

func (s *DoctorService) checkSettings(report *DiagnosticReport) {
	path := s.paths.SettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return // Defaults apply
		}
		report.add(Issue{
			Severity: SeverityWarning,
			Code:     CodeMalformedSettings,
			Message:  fmt.Sprintf("Cannot read settings: %v", err),
		})
		return
	}

	var cfg model.Settings
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		report.add(Issue{
			Severity: SeverityWarning,
			Code:     CodeMalformedSettings,
			Message:  fmt.Sprintf("Invalid TOML in settings: %v", err),
		})
		return
	}
	if err := version.CheckSettingsSchema(path, cfg.SwatchSchema); err != nil {
		report.add(Issue{
			Severity: SeverityWarning,
			Code:     CodeMalformedSettings,
			Message:  err.Error(),
		})
		return
	}
	if err := cfg.Validate(); err != nil {
		report.add(Issue{
			Severity: SeverityWarning,
			Code:     CodeMalformedSettings,
			Message:  err.Error(),
		})
	}
}

func (s *DoctorService) checkGlobalConfig(report *DiagnosticReport) {
	if s.globalPath == "" {
		return
	}

	data, err := os.ReadFile(s.globalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return // No global config is fine
		}
		report.add(Issue{
			Severity: SeverityWarning,
			Code:     CodeMalformedGlobalConfig,
			Message:  fmt.Sprintf("Cannot read global config: %v", err),
		})
		return
	}

	var cfg model.GlobalConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		report.add(Issue{
			Severity: SeverityWarning,
			Code:     CodeMalformedGlobalConfig,
			Message:  fmt.Sprintf("Invalid TOML in global config: %v", err),
		})
		return
	}
	if err := version.CheckGlobalSchema(s.globalPath, cfg.SwatchSchema); err != nil {
		report.add(Issue{
			Severity: SeverityWarning,
			Code:     CodeMalformedGlobalConfig,
			Message:  err.Error(),
		})
	}
}

// fixBrokenHistory drops both history stacks. The palette itself already
// passed validation, so it is kept as is.
func (s *DoctorService) fixBrokenHistory() error {
	ws, err := s.workspace.Load()
	if err != nil {
		return err
	}
	ws.History = model.HistoryLog{Undo: []json.RawMessage{}, Redo: []json.RawMessage{}}
	return s.workspace.Save(ws)
}
