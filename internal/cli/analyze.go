package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thgossler/menv/internal/engine"
	"github.com/thgossler/menv/internal/pathlist"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <variable>",
	Short: "Inspect the composition of a PATH-like variable",
	Long: `Break a PATH-like variable into its entries and report duplicates, empty
entries, and entries that do not name an existing directory. Read-only;
nothing is changed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Analyze(context.Background(), &engine.AnalyzeRequest{Name: args[0]})
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(result)
		}
		printAnalyzeResult(result)
		return nil
	},
}

func printAnalyzeResult(result *engine.AnalyzeResult) {
	PrintSection(fmt.Sprintf("Analysis of %s", result.Name))

	a := result.Analysis
	PrintLabelValue("Entries", fmt.Sprintf("%d", a.TotalEntries))
	PrintLabelValue("Unique", fmt.Sprintf("%d", a.UniqueEntries))
	PrintLabelValue("Duplicates", fmt.Sprintf("%d", a.DuplicateCount))
	PrintLabelValue("Empty", fmt.Sprintf("%d", a.EmptyCount))
	PrintLabelValue("Existing dirs", fmt.Sprintf("%d", a.ExistingDirCount))

	fmt.Println()
	for _, entry := range a.Entries {
		PrintInfo(formatEntryLine(entry))
	}

	if len(result.Suggestions) > 0 {
		fmt.Println()
		PrintSection("Suggestions")
		PrintList(result.Suggestions, 2)
	}
}

// formatEntryLine renders one analyzed entry with its existence marker and
// any anomaly annotations.
func formatEntryLine(entry pathlist.Entry) string {
	if entry.Text == "" {
		return fmt.Sprintf("⚠ %2d. (empty, resolves to the current directory)", entry.Position)
	}

	marker := "✗"
	if entry.Exists {
		marker = "✓"
	}
	line := fmt.Sprintf("%s %2d. %s", marker, entry.Position, displayPath(entry.Text))
	if entry.Occurrences > 1 {
		line += fmt.Sprintf(" (appears %d times)", entry.Occurrences)
	}
	return line
}
