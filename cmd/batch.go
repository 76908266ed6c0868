package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reputation-cli/internal/listings"
	"github.com/sells-group/reputation-cli/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate every listing in a CSV or XLSX sheet",
	Long:  "Reads name and location columns from --input and runs one independent evaluation per row. Failed rows are logged and counted; the batch continues.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		input, _ := cmd.Flags().GetString("input")
		limit, _ := cmd.Flags().GetInt("limit")
		if p, _ := cmd.Flags().GetString("provider"); p != "" {
			cfg.Provider.Kind = p
		}
		if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
			cfg.Report.OutputDir = dir
		}
		if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
			cfg.Batch.MaxConcurrent = n
		}
		charset, _ := cmd.Flags().GetString("charset")
		sheet, _ := cmd.Flags().GetString("sheet")

		reqs, err := listings.Read(ctx, input, listings.Options{Charset: charset, SheetName: sheet})
		if err != nil {
			return eris.Wrap(err, "batch: read input")
		}
		if limit > 0 && len(reqs) > limit {
			reqs = reqs[:limit]
		}
		if len(reqs) == 0 {
			zap.L().Info("batch: no listings in input", zap.String("input", input))
			return nil
		}

		env, err := initPipeline(ctx, "batch")
		if err != nil {
			return err
		}
		defer env.Close()

		zap.L().Info("batch: starting",
			zap.Int("listings", len(reqs)),
			zap.Int("concurrency", cfg.Batch.MaxConcurrent),
		)
		summary, err := env.Pipeline.RunBatch(ctx, reqs, cfg.Batch.MaxConcurrent)
		if summary != nil {
			formatBatchSummary(cmd.OutOrStdout(), summary)
		}
		if err != nil {
			return eris.Wrap(err, "batch interrupted")
		}
		return nil
	},
}

// formatBatchSummary writes one line per listing and the totals.
func formatBatchSummary(out io.Writer, s *pipeline.BatchSummary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "LISTING\tLOCATION\tSCORE\tRECOMMENDATION\tERROR")
	for _, r := range s.Results {
		if r.Err != nil || r.Report == nil {
			_, _ = fmt.Fprintf(w, "%s\t%s\t-\t-\t%v\n", r.Request.Name, r.Request.Location, r.Err)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t\n", r.Request.Name, r.Request.Location, r.Report.Score, r.Report.Recommendation)
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "\n%d succeeded, %d failed\n", s.Succeeded, s.Failed)
}

func init() {
	batchCmd.Flags().String("input", "", "CSV or XLSX file with name and location columns")
	batchCmd.Flags().Int("limit", 0, "max listings to process (0 = all)")
	batchCmd.Flags().Int("concurrency", 0, "parallel evaluations (default from config)")
	batchCmd.Flags().String("provider", "", "review provider: outscraper or google (default from config)")
	batchCmd.Flags().String("output-dir", "", "directory for report files (default from config)")
	batchCmd.Flags().String("charset", "", "CSV charset, e.g. windows-1252 (default UTF-8)")
	batchCmd.Flags().String("sheet", "", "XLSX sheet name (default first sheet)")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}
