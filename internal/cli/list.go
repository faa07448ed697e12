package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thgossler/menv/internal/engine"
	"github.com/thgossler/menv/internal/stores"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every variable managed in any store",
	Long: `List every environment variable found in the stores menv manages, with
the effective value and the stores carrying it. Variables that exist
only in this process's inherited environment are not listed; use info
to inspect those.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.List(context.Background(), &engine.ListRequest{})
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(result)
		}
		printListResult(result)
		return nil
	},
}

func printListResult(result *engine.ListResult) {
	if len(result.Entries) == 0 {
		PrintInfo("No managed variables")
		return
	}

	rows := make([][]string, len(result.Entries))
	for i, entry := range result.Entries {
		rows[i] = []string{entry.Name, truncateValue(entry.Value), formatSources(entry.Sources)}
	}
	PrintTable([]string{"NAME", "VALUE", "SOURCES"}, rows)
}

func formatSources(kinds []stores.SourceKind) string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = kind.String()
	}
	return strings.Join(names, ", ")
}

// truncateValue keeps table rows readable for long PATH values.
func truncateValue(value string) string {
	const max = 60
	if len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}
