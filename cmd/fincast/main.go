// Command fincast runs a scenario file through the simulation engine and
// prints the year-by-year results as a table or CSV. With -db the run is
// also persisted, which lets the HTTP server browse it later.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/mreece/fincast/internal/config"
	"github.com/mreece/fincast/internal/engine"
	"github.com/mreece/fincast/internal/service"
	"github.com/mreece/fincast/internal/storage"
	"github.com/mreece/fincast/internal/storage/sqlite"
	"github.com/mreece/fincast/pkg/logging"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "path to a scenario YAML file (required)")
		dbPath       = flag.String("db", "", "persist the run to this SQLite database")
		format       = flag.String("format", "table", "output format: table or csv")
		showEvents   = flag.Bool("events", false, "print the event log after the results")
	)
	flag.Parse()

	logging.Setup()

	if *scenarioPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *format != "table" && *format != "csv" {
		fmt.Fprintf(os.Stderr, "unknown format %q\n", *format)
		os.Exit(2)
	}

	scenario, err := config.Load(*scenarioPath)
	if err != nil {
		slog.Error("Failed to load scenario", "path", *scenarioPath, "error", err)
		os.Exit(1)
	}

	var store storage.Store
	if *dbPath != "" {
		s, err := sqlite.New(*dbPath)
		if err != nil {
			slog.Error("Failed to open database", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	sim := service.NewSimulationService(store, slog.Default())
	run, snapshots, err := sim.Run(context.Background(), scenario, "")
	if err != nil {
		slog.Error("Run failed", "scenario", scenario.Name, "error", err)
		os.Exit(1)
	}

	switch *format {
	case "csv":
		if err := writeCSV(os.Stdout, snapshots); err != nil {
			slog.Error("Failed to write CSV", "error", err)
			os.Exit(1)
		}
	default:
		writeTable(os.Stdout, snapshots)
	}

	if *showEvents {
		for _, snap := range snapshots {
			for _, msg := range snap.Events {
				fmt.Printf("%d: %s\n", snap.Year, msg)
			}
		}
	}
	if store != nil {
		fmt.Fprintf(os.Stderr, "run %s saved to %s\n", run.ID, *dbPath)
	}
}

func writeTable(out *os.File, snapshots []engine.Snapshot) {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "YEAR\tINCOME\tTAXES\tSPENDING\tDEBT\tNET WORTH\tINSOLVENT")
	for _, snap := range snapshots {
		t := snap.Totals
		mark := ""
		if snap.Insolvent {
			mark = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			snap.Year, t.Income, t.TaxesPaid, t.Spending, t.Debt, t.NetWorth, mark)
	}
	w.Flush()
}

func writeCSV(out *os.File, snapshots []engine.Snapshot) error {
	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write([]string{"year", "income", "taxes", "spending", "debt", "net_worth", "insolvent"}); err != nil {
		return err
	}
	for _, snap := range snapshots {
		t := snap.Totals
		record := []string{
			fmt.Sprint(snap.Year),
			t.Income.String(),
			t.TaxesPaid.String(),
			t.Spending.String(),
			t.Debt.String(),
			t.NetWorth.String(),
			fmt.Sprint(snap.Insolvent),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
