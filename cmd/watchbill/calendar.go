package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/warp/watchbill-engine/calendar"
	"github.com/warp/watchbill-engine/watchbill"
)

// newCalendarCmd builds the calendar subcommand: classifies a month and
// prints the per-day classification with the watch point values.
func newCalendarCmd() *cobra.Command {
	var daysOff []int

	cmd := &cobra.Command{
		Use:   "calendar <year> <month>",
		Short: "Print the month's day classifications and point values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseYearMonth(args[0], args[1])
			if err != nil {
				return err
			}

			cal, err := calendar.Build(year, month, daysOff...)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tWEEKDAY\tCLASSIFICATION\tDAY PTS\tNIGHT PTS")
			for i, c := range cal.Classifications() {
				date := time.Date(year, time.Month(month), i+1, 0, 0, 0, 0, time.UTC)
				dayPts, _ := watchbill.ValueOf(c, watchbill.ShiftDay)
				nightPts, _ := watchbill.ValueOf(c, watchbill.ShiftNight)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					i+1, date.Weekday(), c,
					dayPts.StringFixed(0), nightPts.StringFixed(0),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\nMonthly pool: %s points\n",
				watchbill.MonthlyPool(cal).StringFixed(1))
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&daysOff, "days-off", nil, "1-indexed days forced to weekend")
	return cmd
}
