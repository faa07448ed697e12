package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thgossler/menv/internal/engine"
)

var removePathCmd = &cobra.Command{
	Use:   "remove-path <variable> <path>",
	Short: "Remove one entry from a PATH-like variable in every store",
	Long: `Remove a single entry from a PATH-like variable. Every store and profile
file that carries the entry is rewritten; stores without it are left
alone. A store whose whole list was just that entry loses the variable
entirely.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		ctx := context.Background()
		name, entry := args[0], args[1]

		if !forceMode && !jsonOutput {
			if !promptConfirm(fmt.Sprintf("Remove %q from %s in every store and file?", entry, name)) {
				return engine.ErrCancelled
			}
		}

		result, err := eng.RemovePathEntry(ctx, &engine.RemovePathRequest{Name: name, Entry: entry})
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(result)
		}
		printRemovePathResult(result)
		return nil
	},
}

func printRemovePathResult(result *engine.RemovePathResult) {
	PrintSuccess(fmt.Sprintf("Removed %q from %s", result.Entry, result.Name))
	for _, op := range result.Applied {
		PrintInfo("  " + op.Describe())
	}
	if result.BindingRemoved {
		PrintInfo(fmt.Sprintf("%s held only this entry in at least one store; that binding is gone", result.Name))
	}
	for _, w := range result.Warnings {
		PrintWarning(w)
	}
}
