package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/warp/watchbill-engine/watchbill"
)

// newSummaryCmd builds the summary subcommand: loads a stored month and
// prints expected, actual, and deviation per watchstander.
func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <year> <month>",
		Short: "Print expected/actual/deviation per watchstander",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseYearMonth(args[0], args[1])
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			roster, err := store.LoadRoster(context.Background(), year, month)
			if err != nil {
				return err
			}
			if roster == nil {
				return fmt.Errorf("no roster stored for %d-%02d", year, month)
			}

			summaries := roster.Summary()
			pool := watchbill.MonthlyPool(roster.Calendar())

			fmt.Printf("=== %d-%02d Watchbill Summary ===\n", year, month)
			fmt.Printf("Watchstanders: %d\n", len(summaries))
			fmt.Printf("Monthly pool:  %s points\n\n", pool.StringFixed(1))

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tROLE\tEXPECTED\tACTUAL\tDEVIATION\t%")
			for _, s := range summaries {
				role := ""
				if s.Designated {
					role = "designated"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					s.Name, role,
					s.Expected.StringFixed(1),
					s.Actual.StringFixed(1),
					s.Deviation.Deviation.StringFixed(1),
					s.Percent.StringFixed(1),
				)
			}
			return w.Flush()
		},
	}
}
