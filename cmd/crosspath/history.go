package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"text/tabwriter"
	"time"

	"github.com/banshee-data/crosspath/internal/db"
)

func runHistory(args []string, stdout io.Writer, logger *log.Logger) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(logger.Writer())
	dbPath := fs.String("db", "crosspath.db", "Run history database")
	limit := fs.Int("n", 20, "Number of runs to list (0 for all)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	database, err := db.OpenDB(*dbPath)
	if err != nil {
		logger.Printf("%v", err)
		return 1
	}
	defer database.Close()

	runs, err := db.NewRunStore(database).ListRuns(*limit)
	if err != nil {
		logger.Printf("%v", err)
		return 1
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tCREATED\tSOLVER\tPLANE\tWINDOW\tENTITIES\tCOUNT\tINPUT\tSOURCE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t[%g, %g]\t%d\t%d\t%s\t%s\n",
			r.RunID,
			time.Unix(0, r.CreatedAt).UTC().Format(time.RFC3339),
			r.Solver, r.Plane, r.WindowLow, r.WindowHigh,
			r.Entities, r.Count, r.Digest, r.SourcePath)
	}
	if err := tw.Flush(); err != nil {
		logger.Printf("%v", err)
		return 1
	}
	return 0
}
