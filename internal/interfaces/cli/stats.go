package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show corpus composition statistics",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
	defer cancel()

	resp, err := cliCtx.Client.Stats(ctx)
	if err != nil {
		return err
	}

	if cliCtx.OutputFormat == "json" {
		return printJSON(cmd, resp)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total cases: %d\n", resp.TotalCases)
	if resp.YearMin > 0 {
		fmt.Fprintf(out, "Year range: %d-%d\n", resp.YearMin, resp.YearMax)
	}

	printCountTable(cmd, "Court", resp.Courts)
	printCountTable(cmd, "Outcome", resp.Outcomes)
	printCountTable(cmd, "Source", resp.Sources)
	return nil
}

// printCountTable renders one name-to-count map sorted by count descending,
// name ascending on ties.
func printCountTable(cmd *cobra.Command, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{label, "Cases"})
	table.SetBorder(false)
	for _, name := range names {
		table.Append([]string{name, fmt.Sprintf("%d", counts[name])})
	}
	table.Render()
}
