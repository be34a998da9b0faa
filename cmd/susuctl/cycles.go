package main

import (
	"fmt"
	"strconv"

	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/services"
	"susu-dashboard/internal/pkg/format"
	"susu-dashboard/internal/pkg/pagination"

	"github.com/spf13/cobra"
)

func newCyclesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Savings cycles",
	}
	cmd.AddCommand(newCyclesProgressCmd(opts))
	return cmd
}

func newCyclesProgressCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "progress ID",
		Short: "Print progress, remaining deposits and withdrawal prefill for a cycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid cycle id %q", args[0])
			}

			s, err := opts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			cycle, err := services.NewCycleService(s.api).Get(s.ctx, id)
			if err != nil {
				return err
			}
			deposits, depErr := services.NewDepositService(s.api).ByCycle(s.ctx, id, pagination.All)
			m := domain.MetricsFor(*cycle, deposits.Items, depErr == nil)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Cycle:     %s (%s)\n", cycle.CycleCode, cycle.Status)
			fmt.Fprintf(w, "Client:    %s\n", cycle.OwnerName())
			fmt.Fprintf(w, "Deposits:  %d/%d\n", m.TotalDeposits, domain.CycleLength)
			fmt.Fprintf(w, "Progress:  %s\n", format.Percent(m.Progress))
			fmt.Fprintf(w, "Remaining: %d\n", m.Remaining)
			fmt.Fprintf(w, "Total:     %s\n", format.Money(m.TotalAmount))
			fmt.Fprintf(w, "Prefill:   %s\n", format.Money(m.Prefill))
			return nil
		},
	}
}
