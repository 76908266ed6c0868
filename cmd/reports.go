package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/internal/report"
	"github.com/sells-group/reputation-cli/internal/store"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect saved reputation reports",
	Long:  "Commands for listing and viewing reports kept by the configured store.",
}

// -- reports list --

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := cfg.Validate("reports"); err != nil {
			return err
		}

		st, _, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		listing, _ := cmd.Flags().GetString("listing")
		rec, _ := cmd.Flags().GetString("recommendation")
		limit, _ := cmd.Flags().GetInt("limit")

		reports, err := st.ListReports(ctx, store.ReportFilter{
			ListingName:    listing,
			Recommendation: model.Recommendation(rec),
			Limit:          limit,
		})
		if err != nil {
			return eris.Wrap(err, "reports list")
		}

		if len(reports) == 0 {
			fmt.Fprintln(os.Stderr, "No reports found.")
			return nil
		}

		formatReportsList(cmd.OutOrStdout(), reports)
		return nil
	},
}

// -- reports show --

var reportsShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Show a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := cfg.Validate("reports"); err != nil {
			return err
		}

		st, _, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		r, err := st.GetReport(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "reports show")
		}

		format, _ := cmd.Flags().GetString("format")
		return report.Write(cmd.OutOrStdout(), r, format)
	},
}

func init() {
	reportsListCmd.Flags().String("listing", "", "filter by listing name (substring, case-insensitive)")
	reportsListCmd.Flags().String("recommendation", "", "filter by recommendation (GO, NO-GO, INVESTIGATE)")
	reportsListCmd.Flags().Int("limit", 50, "max number of reports to display")

	reportsShowCmd.Flags().String("format", report.FormatJSON, "output format: json, yaml or summary")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	rootCmd.AddCommand(reportsCmd)
}

// formatReportsList writes a tabular list of reports to w.
func formatReportsList(out io.Writer, reports []model.ReputationReport) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tLISTING\tLOCATION\tSCORE\tRECOMMENDATION\tGENERATED")
	_, _ = fmt.Fprintln(w, "--\t-------\t--------\t-----\t--------------\t---------")

	for _, r := range reports {
		name := r.ListingName
		if len([]rune(name)) > 30 {
			name = string([]rune(name)[:27]) + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			truncateID(r.ID),
			name,
			r.Location,
			r.Score,
			r.Recommendation,
			r.GeneratedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
