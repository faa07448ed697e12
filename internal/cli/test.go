package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thgossler/menv/internal/engine"
)

var testCmd = &cobra.Command{
	Use:   "test <name>",
	Short: "Check where a variable is actually visible",
	Long: `Check which launch contexts see a variable: newly started applications,
newly opened shells, and this very process. The contexts differ because
each reads the environment from a different store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Visibility(context.Background(), &engine.VisibilityRequest{Name: args[0]})
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(result)
		}
		printVisibilityResult(result)
		return nil
	},
}

func printVisibilityResult(result *engine.VisibilityResult) {
	PrintSection(fmt.Sprintf("Visibility of %s", result.Name))
	printVisibilityLine("New applications", result.Apps, result.AppValue)
	printVisibilityLine("New shells", result.Shells, result.ShellValue)
	printVisibilityLine("This process", result.CurrentProcess, result.ProcessValue)
}

func printVisibilityLine(context string, visible bool, value string) {
	if visible {
		PrintSuccess(fmt.Sprintf("%s: %s", context, value))
		return
	}
	PrintInfo(fmt.Sprintf("✗ %s: not visible", context))
}
