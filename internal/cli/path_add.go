package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thgossler/menv/internal/engine"
	"github.com/thgossler/menv/internal/pathlist"
)

var addPathCmd = &cobra.Command{
	Use:   "add-path <variable> <path>",
	Short: "Append one entry to a PATH-like variable",
	Long: `Append a path entry to a colon-delimited list variable.

The entry goes to the end of the list. An entry the list already contains
is left where it is and the command succeeds without writing anything.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		return runAddPath(context.Background(), eng, args[0], args[1], pathlist.Append)
	},
}

// runAddPath merges one entry into a list variable and renders the outcome.
func runAddPath(ctx context.Context, eng *engine.Engine, name, entry string, mode pathlist.Mode) error {
	result, err := eng.AddPathEntry(ctx, &engine.AddPathRequest{Name: name, Entry: entry, Mode: mode})
	if err != nil {
		return err
	}
	if jsonOutput {
		return outputJSON(result)
	}
	printAddPathResult(result)
	return nil
}

func printAddPathResult(result *engine.AddPathResult) {
	if result.AlreadyPresent {
		PrintInfo(fmt.Sprintf("%s already contains %q, nothing to do", result.Name, result.Entry))
		return
	}
	PrintSuccess(fmt.Sprintf("%s is now %s", result.Name, result.NewValue))
	for _, w := range result.Warnings {
		PrintWarning(w)
	}
}
