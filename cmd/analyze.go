package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/internal/report"
	"github.com/sells-group/reputation-cli/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <listing-name> <location>",
	Short: "Evaluate one listing's reputation",
	Example: `  reputation-cli analyze "Dental Excellence" "Medellín"
  reputation-cli analyze "Sonrisa Feliz" "Cali" --provider google --format json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		req := model.ListingRequest{Name: args[0], Location: args[1]}
		if err := req.Validate(); err != nil {
			return err
		}
		if err := applyAnalyzeFlags(cmd); err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")

		env, err := initPipeline(ctx, "analyze")
		if err != nil {
			return err
		}
		defer env.Close()

		r, runErr := env.Pipeline.Run(ctx, req)
		if r == nil {
			return eris.Wrap(runErr, "analyze")
		}

		out := cmd.OutOrStdout()
		if err := report.Write(out, r, format); err != nil {
			return err
		}
		if runErr != nil {
			return eris.Wrap(runErr, "analyze")
		}
		printSavedPath(out, env.Files, r, format)
		return nil
	},
}

// applyAnalyzeFlags folds command-line overrides into cfg.
func applyAnalyzeFlags(cmd *cobra.Command) error {
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.Provider.Kind = p
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.Report.OutputDir = dir
	}
	switch f, _ := cmd.Flags().GetString("format"); f {
	case report.FormatJSON, report.FormatYAML, report.FormatSummary:
		return nil
	default:
		return eris.Errorf("unknown format %q (json, yaml, summary)", f)
	}
}

// printSavedPath tells the user where the report file went. Structured
// formats keep stdout clean for piping.
func printSavedPath(out io.Writer, files *store.FileStore, r *model.ReputationReport, format string) {
	if files == nil || format != report.FormatSummary {
		return
	}
	_, _ = fmt.Fprintf(out, "\nReport saved: %s\n", files.Path(r))
}

func init() {
	analyzeCmd.Flags().String("provider", "", "review provider: outscraper or google (default from config)")
	analyzeCmd.Flags().String("output-dir", "", "directory for report files (default from config)")
	analyzeCmd.Flags().String("format", report.FormatSummary, "stdout format: summary, json or yaml")
	rootCmd.AddCommand(analyzeCmd)
}
