package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thgossler/menv/internal/engine"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show a variable's state in every store",
	Long: `Show everything menv knows about one variable: its effective value, which
stores carry it, where each store lives on disk, and every shell profile
line declaring it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Info(context.Background(), &engine.InfoRequest{Name: args[0]})
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(result)
		}
		printInfoResult(result)
		return nil
	},
}

func printInfoResult(result *engine.InfoResult) {
	PrintSection(fmt.Sprintf("Variable %s", result.Name))

	if !result.Found {
		PrintEmptyState(fmt.Sprintf("%s is not set in any store", result.Name))
		return
	}

	PrintLabelValue("Value", result.Value)
	if result.PathLike {
		PrintLabelValue("Kind", "PATH-like list")
	}
	if result.InheritedOnly {
		PrintWarning(fmt.Sprintf("%s is only inherited from this process's environment; menv does not manage it", result.Name))
	}

	rows := make([][]string, len(result.Statuses))
	for i, status := range result.Statuses {
		state := "absent"
		if status.Present {
			state = "set"
		}
		rows[i] = []string{
			status.Kind.String(),
			state,
			truncateValue(status.Value),
			displayPath(status.Location),
		}
	}
	fmt.Println()
	PrintTable([]string{"STORE", "STATE", "VALUE", "LOCATION"}, rows)

	fmt.Println()
	for _, status := range result.Statuses {
		if status.Present {
			PrintInfo(fmt.Sprintf("  %s: %s", status.Kind, status.Kind.Description()))
		}
	}

	if len(result.Declarations) > 1 {
		fmt.Println()
		PrintWarning("several profile files declare this variable; the first wins for new shells")
		for i, decl := range result.Declarations {
			line := fmt.Sprintf("%s:%d  %s=%s", displayPath(decl.File), decl.Line+1, decl.Name, decl.Value)
			if i > 0 {
				line += "  (shadowed)"
			}
			PrintInfo("  " + line)
		}
	}
}
