package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
	"github.com/turtacn/NyayVandan/pkg/types/common"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	var (
		text string
		file string
		topK int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Retrieve and audit precedents for case facts",
		Long: "Submits case facts to the API server, prints the ranked precedents with\n" +
			"their similarity breakdown, the per-case explanations, and the ethical\n" +
			"review of the result set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, text, file, topK)
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "case facts as a string")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read case facts from a file")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "number of precedents to retrieve (server default when 0)")
	cmd.MarkFlagsMutuallyExclusive("text", "file")

	return cmd
}

func runAnalyze(cmd *cobra.Command, text, file string, topK int) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	caseText, err := resolveCaseText(text, file)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
	defer cancel()

	resp, err := cliCtx.Client.Analyze(ctx, caselawtypes.AnalyzeRequest{
		CaseText: caseText,
		TopK:     topK,
	})
	if err != nil {
		return err
	}

	if cliCtx.OutputFormat == "json" {
		return printJSON(cmd, resp)
	}
	printAnalysis(cmd, resp)
	return nil
}

func resolveCaseText(text, file string) (string, error) {
	if text != "" {
		return text, nil
	}
	if file == "" {
		return "", fmt.Errorf("either --text or --file is required")
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read case facts: %w", err)
	}
	return string(b), nil
}

func printAnalysis(cmd *cobra.Command, resp *caselawtypes.AnalyzeResponse) {
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)

	bold.Fprintf(out, "Query %s — %d precedent(s)\n\n", resp.QueryInfo.QueryID, len(resp.SimilarCases))

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Rank", "Case", "Court", "Year", "Outcome", "Score", "Label"})
	table.SetBorder(false)
	for i, c := range resp.SimilarCases {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			c.ID,
			c.Court,
			fmt.Sprintf("%d", c.Year),
			c.Outcome,
			fmt.Sprintf("%.4f", c.Scores.Hybrid),
			c.SimilarityLabel,
		})
	}
	table.Render()

	if len(resp.Explanations) > 0 {
		bold.Fprintf(out, "\nExplanations\n")
		for _, e := range resp.Explanations {
			fmt.Fprintf(out, "\n[%s] %s\n", e.CaseID, e.ExplanationText)
		}
	}

	printReview(cmd, resp.EthicalFlags)

	fmt.Fprintf(out, "\n%s\n", resp.Disclaimer)
}

func printReview(cmd *cobra.Command, review caselawtypes.EthicalReviewDTO) {
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)

	bold.Fprintf(out, "\nEthical review\n")
	d := review.DiversityScore
	fmt.Fprintf(out, "Diversity: overall %.4f (court %.4f, temporal %.4f, outcome %.4f)\n",
		d.OverallScore, d.CourtDiversity, d.TemporalDiversity, d.OutcomeDiversity)
	fmt.Fprintf(out, "Courts: %s | Years: %s\n",
		strings.Join(d.Details.CourtsRepresented, ", "), d.Details.YearRange)

	for _, w := range review.BiasWarnings {
		sev := string(w.Severity)
		switch w.Severity {
		case common.SeverityHigh:
			sev = color.RedString(sev)
		case common.SeverityMedium:
			sev = color.YellowString(sev)
		}
		fmt.Fprintf(out, "[%s] %s\n", sev, w.Message)
	}

	fmt.Fprintln(out, review.ReviewSummary)
}
