package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/warp/watchbill-engine/importer"
	"github.com/warp/watchbill-engine/watchbill"
)

// newImportCmd builds the import subcommand: reads a tab-separated
// availability table from a file (or stdin with "-"), loads it onto the
// month's roster, and persists every entry.
func newImportCmd() *cobra.Command {
	var designated []string
	var daysOff []int

	cmd := &cobra.Command{
		Use:   "import <file> <year> <month>",
		Short: "Import a pasted availability table",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseYearMonth(args[1], args[2])
			if err != nil {
				return err
			}

			var raw []byte
			if args[0] == "-" {
				raw, err = os.ReadFile("/dev/stdin")
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			entries, err := importer.ParseTable(string(raw), designated)
			if err != nil {
				return err
			}

			roster, err := watchbill.NewRoster(year, month, daysOff...)
			if err != nil {
				return err
			}
			if err := importer.Apply(roster, entries); err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := context.Background()
			if err := store.SaveRoster(ctx, year, month, daysOff); err != nil {
				return err
			}
			for _, p := range roster.People() {
				if err := store.SaveWatchstander(ctx, toRecord(p)); err != nil {
					return err
				}
				if p.Availability != nil {
					if err := store.SetAvailability(ctx, p.Name, year, month, p.Availability.Ints()); err != nil {
						return err
					}
				}
			}

			fmt.Printf("Imported %d watchstanders into %d-%02d\n", len(entries), year, month)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&designated, "designated", nil, "names flagged designated-role")
	cmd.Flags().IntSliceVar(&daysOff, "days-off", nil, "1-indexed days forced to weekend")
	return cmd
}

func parseYearMonth(yearArg, monthArg string) (int, int, error) {
	year, err := strconv.Atoi(yearArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", yearArg)
	}
	month, err := strconv.Atoi(monthArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q", monthArg)
	}
	return year, month, nil
}
