package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/discovery"
	"github.com/amterp/swatch/internal/palette"
	"github.com/amterp/swatch/internal/store"
)

// completionCtx provides lightweight workspace access for shell completion.
// Completion functions run during ParseOrExit, before NewApp() is called,
// so we can't use the full App. This loads just enough to list cell names
// and groups.
type completionCtx struct {
	once  sync.Once
	store *palette.Store
	err   error
}

var compCtx completionCtx

func initCompletionCtx() {
	compCtx.once.Do(func() {
		result, err := discovery.DiscoverWorkspace()
		if err != nil || result == nil || !result.Initialized {
			compCtx.err = fmt.Errorf("no workspace found")
			return
		}

		paths := config.NewPaths(result.ProjectRoot)
		ws, err := store.NewWorkspaceStore(paths).Load()
		if err != nil {
			// Graceful degradation: no completions if the workspace is broken
			compCtx.err = err
			return
		}
		compCtx.store, compCtx.err = palette.FromDocument(&ws.Palette, paths.WorkspacePath())
	})
}

// completeSelectors returns cell names, @groups and * matching the prefix.
func completeSelectors(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	if compCtx.err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}
	return selectorCandidates(compCtx.store, toComplete), ra.CompletionDirectiveNoFileComp
}

func selectorCandidates(st *palette.Store, prefix string) []string {
	var result []string
	if strings.HasPrefix("*", prefix) {
		result = append(result, "*")
	}
	for _, c := range st.Cells() {
		if c.Name != "" && strings.HasPrefix(c.Name, prefix) {
			result = append(result, c.Name)
		}
	}
	for _, g := range st.GroupNames() {
		if strings.HasPrefix("@"+g, prefix) {
			result = append(result, "@"+g)
		}
	}
	return result
}

// registerCompletion adds the "swatch completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
