package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thgossler/menv/internal/engine"
	"github.com/thgossler/menv/internal/pathlist"
)

var setCmd = &cobra.Command{
	Use:     "set <name> <value>",
	Aliases: []string{"add"},
	Short:   "Set a variable everywhere new programs will look",
	Long: `Set an environment variable for the current user.

Scalar variables are written to the launchd session, the login agent, and
the shell profile, so applications and shells pick them up alike.

PATH-like variables stay out of shell profiles, because a profile that is
sourced twice would duplicate the whole list. For them you choose whether
the value is appended, prepended, or replaces the list; with --force the
value is appended without asking.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		ctx := context.Background()
		name, value := args[0], args[1]

		if eng.PathLike(name) {
			if forceMode || jsonOutput {
				return runAddPath(ctx, eng, name, value, pathlist.Append)
			}
			return setPathInteractive(ctx, eng, name, value)
		}

		result, err := eng.Set(ctx, &engine.SetRequest{Name: name, Value: value})
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(result)
		}
		printSetResult(result)
		return nil
	},
}

// setPathInteractive runs the three-way placement choice for list values.
// Replacing the whole list asks once more before doing it.
func setPathInteractive(ctx context.Context, eng *engine.Engine, name, value string) error {
	PrintInfo(fmt.Sprintf("%s holds a list of paths. How should %q be applied?", name, value))
	PrintInfo("  1. Append to the current list")
	PrintInfo("  2. Prepend to the current list")
	PrintInfo("  3. Replace the whole list")

	choice, ok := promptSelect("Choice (1-3)", 3)
	if !ok {
		return engine.ErrCancelled
	}

	if choice == 3 {
		if !promptConfirm(fmt.Sprintf("Replace the entire value of %s with %q?", name, value)) {
			return engine.ErrCancelled
		}
		result, err := eng.Set(ctx, &engine.SetRequest{Name: name, Value: value})
		if err != nil {
			return err
		}
		printSetResult(result)
		return nil
	}

	mode := pathlist.Append
	if choice == 2 {
		mode = pathlist.Prepend
	}
	return runAddPath(ctx, eng, name, value, mode)
}

func printSetResult(result *engine.SetResult) {
	PrintSuccess(fmt.Sprintf("Set %s=%s", result.Name, result.Value))
	if result.ProfileTarget != "" {
		PrintInfo(fmt.Sprintf("  Declared in %s for new shells", displayPath(result.ProfileTarget)))
	}
	for _, w := range result.Warnings {
		PrintWarning(w)
	}
	PrintInfo("Already-running programs keep their old environment")
}
