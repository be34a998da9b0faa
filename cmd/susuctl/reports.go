package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"susu-dashboard/internal/core/access"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/services"
	"susu-dashboard/internal/pkg/export"

	"github.com/spf13/cobra"
)

func newReportsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Administrator reports",
	}
	cmd.AddCommand(newReportsExportCmd(opts))
	return cmd
}

func newReportsExportCmd(opts *globalOptions) *cobra.Command {
	var (
		filter domain.ReportFilter
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered report as CSV or PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "pdf" {
				return fmt.Errorf("unknown format %q (want csv or pdf)", format)
			}
			if out == "" {
				out = "report." + format
			}

			s, err := opts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if !access.Can(s.user.Role, access.ExportReports) {
				return fmt.Errorf("%s accounts cannot export reports", s.user.Role)
			}

			rows, err := services.NewReportService(s.api).Rows(s.ctx, filter)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch format {
			case "csv":
				err = export.WriteCSV(&buf, export.ReportRecords(rows))
			case "pdf":
				err = export.WritePDF(&buf, rows, filter, time.Now())
			}
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(rows), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&filter.Type, "type", "", "Deposit, Withdrawal or Commission")
	f.StringVar(&filter.StartDate, "start", "", "start date (YYYY-MM-DD)")
	f.StringVar(&filter.EndDate, "end", "", "end date (YYYY-MM-DD)")
	f.StringVar(&format, "format", "csv", "csv or pdf")
	f.StringVar(&out, "out", "", "output file (default report.<format>)")
	return cmd
}
