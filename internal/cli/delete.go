package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thgossler/menv/internal/engine"
	"github.com/thgossler/menv/internal/pathlist"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"del", "remove"},
	Short:   "Remove a variable from every store that holds it",
	Long: `Remove an environment variable from every store menv manages: the launchd
session, the login agent, shell profile declarations, and the legacy
environment.plist.

For a PATH-like variable you can instead pick a single entry to remove,
which rewrites the list in every store carrying it. Removing the whole
variable asks once more. --force removes the whole variable immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		ctx := context.Background()
		name := args[0]

		if forceMode || jsonOutput {
			return runDelete(ctx, eng, name)
		}
		if eng.PathLike(name) {
			return deletePathInteractive(ctx, eng, name)
		}
		if !promptConfirm(fmt.Sprintf("Remove %s from every store?", name)) {
			return engine.ErrCancelled
		}
		return runDelete(ctx, eng, name)
	},
}

// deletePathInteractive offers removing one list entry instead of the
// whole variable. Whole-variable removal is confirmed a second time.
func deletePathInteractive(ctx context.Context, eng *engine.Engine, name string) error {
	info, err := eng.Info(ctx, &engine.InfoRequest{Name: name})
	if err != nil {
		return err
	}
	if !info.Found || info.InheritedOnly {
		// Let the delete itself produce the right error for the state.
		return runDelete(ctx, eng, name)
	}

	list := pathlist.Parse(info.Value)
	if len(list) == 0 {
		if !promptConfirm(fmt.Sprintf("Remove %s from every store?", name)) {
			return engine.ErrCancelled
		}
		return runDelete(ctx, eng, name)
	}

	PrintInfo(fmt.Sprintf("%s has %s:", name, PrintCount(len(list), "entry", "entries")))
	for _, entry := range list {
		PrintInfo(fmt.Sprintf("  %d. %s", entry.Position, entry.Text))
	}
	PrintInfo(fmt.Sprintf("  %d. (remove the whole variable)", len(list)+1))

	choice, ok := promptSelect(fmt.Sprintf("Remove which? (1-%d)", len(list)+1), len(list)+1)
	if !ok {
		return engine.ErrCancelled
	}

	if choice <= len(list) {
		result, err := eng.RemovePathEntry(ctx, &engine.RemovePathRequest{Name: name, Entry: list[choice-1].Text})
		if err != nil {
			return err
		}
		printRemovePathResult(result)
		return nil
	}

	if !promptConfirm(fmt.Sprintf("Really remove %s from every store?", name)) {
		return engine.ErrCancelled
	}
	return runDelete(ctx, eng, name)
}

// runDelete removes the whole variable and renders the outcome.
func runDelete(ctx context.Context, eng *engine.Engine, name string) error {
	result, err := eng.Delete(ctx, &engine.DeleteRequest{Name: name})
	if err != nil {
		return err
	}
	if jsonOutput {
		return outputJSON(result)
	}

	kinds := make([]string, len(result.RemovedFrom))
	for i, kind := range result.RemovedFrom {
		kinds[i] = kind.String()
	}
	PrintSuccess(fmt.Sprintf("Removed %s from %s", name, strings.Join(kinds, ", ")))
	for _, w := range result.Warnings {
		PrintWarning(w)
	}
	if result.InheritedValue != "" {
		PrintInfo(fmt.Sprintf("This process still sees %s=%s; restart programs to pick up the removal",
			name, result.InheritedValue))
	}
	return nil
}
