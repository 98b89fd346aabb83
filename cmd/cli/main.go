package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"goverdict/adapters/excel"
	"goverdict/app"
	"goverdict/domain/verdict"
	"goverdict/internal/config"
	"goverdict/internal/viability"
	"goverdict/models"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var thresholdsFile string

	rootCmd := &cobra.Command{
		Use:           "goverdict-cli",
		Short:         "Score research results into viability verdicts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&thresholdsFile, "thresholds", os.Getenv("VIABILITY_CONFIG_FILE"),
		"YAML file overriding the default weights and thresholds")

	rootCmd.AddCommand(
		newScoreCmd(&thresholdsFile),
		newBatchCmd(&thresholdsFile),
		newThresholdsCmd(&thresholdsFile),
	)
	return rootCmd
}

func newScoreCmd(thresholdsFile *string) *cobra.Command {
	var mvp bool
	var jobID string
	var format string

	cmd := &cobra.Command{
		Use:   "score <input.json>",
		Short: "Score one research result",
		Long: `Score one research result read from a JSON file ("-" for stdin).

The file holds the optional "pain", "competition", "market", "timing" and
"filtering" sections.

Example: goverdict-cli score research.json --mvp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q: use text or json", format)
			}
			input, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			mode := models.ModeFull
			if mvp {
				mode = models.ModeMVP
			}
			return runScore(cmd.Context(), cmd.OutOrStdout(), *thresholdsFile, format,
				models.EvaluationRequest{JobID: jobID, Mode: mode, Input: input})
		},
	}

	cmd.Flags().BoolVar(&mvp, "mvp", false, "Score pain and competition only with the MVP weights")
	cmd.Flags().StringVar(&jobID, "job-id", "", "Research job the verdict belongs to")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}

func newBatchCmd(thresholdsFile *string) *cobra.Command {
	var concurrency int
	var sheet string
	var out string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "batch <file.xlsx|file.csv>",
		Short: "Score every row of a spreadsheet",
		Long: `Score every row of an Excel or CSV file. The header row names the
columns (job_id, mode, pain_score, competition_score, market_score, ...).

Example: goverdict-cli batch ideas.xlsx --concurrency 16 --out verdicts.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := excel.NewDataReader(excel.BatchFileConfig{FilePath: args[0], SheetName: sheet}).ReadRequests()
			if err != nil {
				return err
			}
			return runBatch(cmd.Context(), cmd.OutOrStdout(), *thresholdsFile, concurrency, reqs, out, asJSON)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "Rows scored in parallel")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().StringVar(&out, "out", "", "Write an xlsx report to this path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full batch result as JSON")

	return cmd
}

func newThresholdsCmd(thresholdsFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "thresholds",
		Short: "Print the active weights and thresholds as YAML",
		Long: `Print the active weights and thresholds as YAML. The output is a valid
--thresholds file and can be edited and passed back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadEngineConfig(*thresholdsFile)
			if err != nil {
				return err
			}
			out, err := config.MarshalEngineConfig(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newService(thresholdsFile string, concurrency int) (*app.VerdictService, error) {
	cfg, err := config.LoadEngineConfig(thresholdsFile)
	if err != nil {
		return nil, err
	}
	engine, err := viability.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	return app.NewVerdictService(engine, app.WithBatchLimits(app.BatchLimits{Concurrency: concurrency}))
}

func readInput(stdin io.Reader, path string) (verdict.Input, error) {
	var input verdict.Input

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return input, fmt.Errorf("failed to read input: %w", err)
	}

	if err := json.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("invalid input JSON: %w", err)
	}
	return input, nil
}

func runScore(ctx context.Context, w io.Writer, thresholdsFile, format string, req models.EvaluationRequest) error {
	svc, err := newService(thresholdsFile, 1)
	if err != nil {
		return err
	}

	record, err := svc.Evaluate(ctx, req)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}
	printVerdict(w, &record.Verdict)
	return nil
}

func runBatch(ctx context.Context, w io.Writer, thresholdsFile string, concurrency int, reqs []models.EvaluationRequest, out string, asJSON bool) error {
	svc, err := newService(thresholdsFile, concurrency)
	if err != nil {
		return err
	}

	result, err := svc.EvaluateBatch(ctx, reqs)
	if err != nil {
		return err
	}

	if out != "" {
		if err := excel.WriteReport(out, result); err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tJOB\tSCORE\tVERDICT\tRED FLAGS")
	for _, item := range result.Items {
		if item.Record == nil {
			fmt.Fprintf(tw, "%d\t\t-\tERROR\t%s\n", item.Index+1, item.Error)
			continue
		}
		v := item.Record.Verdict
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%s\t%d\n", item.Index+1, item.Record.JobID, v.OverallScore, v.VerdictLabel, len(v.RedFlags))
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d rows: %d scored, %d failed\n", result.Summary.Total, result.Summary.Succeeded, result.Summary.Failed)
	tiers := make([]string, 0, len(result.Summary.ByTier))
	for tier := range result.Summary.ByTier {
		tiers = append(tiers, string(tier))
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		fmt.Fprintf(w, "  %-18s %d\n", tier, result.Summary.ByTier[verdict.Tier(tier)])
	}
	if out != "" {
		fmt.Fprintf(w, "Report written to %s\n", out)
	}
	return nil
}

func printVerdict(w io.Writer, v *verdict.ViabilityVerdict) {
	fmt.Fprintf(w, "%s  %.1f/10\n", v.VerdictLabel, v.OverallScore)
	fmt.Fprintf(w, "%s\n\n", v.VerdictDescription)
	if v.ScoreRange != nil {
		fmt.Fprintf(w, "Likely range: %.1f to %.1f\n", v.ScoreRange.Low, v.ScoreRange.High)
	}
	fmt.Fprintf(w, "Confidence: %s   Data: %s\n", v.Confidence, v.DataSufficiency)

	if len(v.Dimensions) > 0 {
		fmt.Fprintln(w, "\nDimensions:")
		for _, d := range v.Dimensions {
			fmt.Fprintf(w, "  %-12s %4.1f  %-10s weight %.0f%%\n", d.Name, d.Score, d.Status, d.Weight*100)
		}
	}
	if len(v.RedFlags) > 0 {
		fmt.Fprintln(w, "\nRed flags:")
		for _, f := range v.RedFlags {
			fmt.Fprintf(w, "  [%s] %s: %s\n", f.Severity, f.Title, f.Message)
		}
	}
	if len(v.Dealbreakers) > 0 {
		fmt.Fprintln(w, "\nDealbreakers:")
		for _, d := range v.Dealbreakers {
			fmt.Fprintf(w, "  - %s\n", d)
		}
	}
	if len(v.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for i, r := range v.Recommendations {
			fmt.Fprintf(w, "  %d. %s\n", i+1, r)
		}
	}
}
