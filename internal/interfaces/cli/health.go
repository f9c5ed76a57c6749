package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewHealthCmd creates the health command.
func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the API server readiness",
		RunE:  runHealth,
	}
}

func runHealth(cmd *cobra.Command, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
	defer cancel()

	resp, err := cliCtx.Client.Health(ctx)
	if err != nil {
		return err
	}

	if cliCtx.OutputFormat == "json" {
		return printJSON(cmd, resp)
	}

	out := cmd.OutOrStdout()
	status := resp.Status
	if status == "healthy" {
		status = color.GreenString(status)
	} else {
		status = color.YellowString(status)
	}
	fmt.Fprintf(out, "Status: %s\n", status)
	fmt.Fprintf(out, "Dataset loaded: %t\n", resp.DatasetLoaded)
	fmt.Fprintf(out, "Index ready: %t\n", resp.IndexReady)
	fmt.Fprintf(out, "Total cases: %d\n", resp.TotalCases)
	return nil
}
