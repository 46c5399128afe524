/*
main.go - Command-line interface for the watchbill engine

PURPOSE:
  Offline companion to the HTTP server for the schedule writer's loop:
  paste availability in, read the breakdown out. Shares the SQLite store
  with the server.

COMMANDS:
  watchbill import <file> <year> <month>   Import a tab-separated table
  watchbill summary <year> <month>         Expected/actual/deviation
  watchbill calendar <year> <month>        Day classifications

GLOBAL FLAGS:
  --db   SQLite database path (default: watchbill.db)

SEE ALSO:
  - cmd/server/main.go: The HTTP server sharing the same store
  - importer/table.go: The table format
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/warp/watchbill-engine/store/sqlite"
	"github.com/warp/watchbill-engine/watchbill"
)

var dbPath string

func main() {
	root := &cobra.Command{
		Use:           "watchbill",
		Short:         "Fairness-balanced watch schedule tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "watchbill.db", "SQLite database path")

	root.AddCommand(newImportCmd())
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newCalendarCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openStore() (*sqlite.Store, error) {
	return sqlite.New(dbPath)
}

func toRecord(p *watchbill.Person) sqlite.WatchstanderRecord {
	return sqlite.WatchstanderRecord{
		Name:       p.Name,
		Designated: p.Designated,
		RoleWeight: p.RoleWeight.String(),
	}
}
