// Command oadr-events lists the events a VTN currently publishes.
//
// Connection settings come from OADR3_* environment variables
// (OADR3_VTN_URL, OADR3_TOKEN_URL, OADR3_CLIENT_ID, OADR3_CLIENT_SECRET,
// ...); flags override the base URL and narrow the listing.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/elaadnl/openadr3-go/bl"
	"github.com/elaadnl/openadr3-go/vtn"
)

func main() {
	vtnURL := flag.String("vtn-url", "", "VTN base URL (env OADR3_VTN_URL)")
	programID := flag.String("program", "", "Only list events of this program")
	limit := flag.Int("limit", 0, "Maximum number of events to list")
	timeout := flag.Duration("timeout", 30*time.Second, "Timeout for the whole run")
	insecure := flag.Bool("insecure", false, "Skip TLS certificate verification")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := bl.FromEnv()
	if err != nil {
		logger.Fatal("load configuration", "err", err)
	}
	if *vtnURL != "" {
		cfg.BaseURL = *vtnURL
	}
	cfg.Auth.Logger = logger
	cfg.HTTP.Logger = logger
	cfg.HTTP.TLSSkipVerify = *insecure

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := bl.NewHTTPClient(ctx, cfg)
	if err != nil {
		logger.Fatal("connect to vtn", "err", err)
	}

	events, err := client.Events.List(ctx, vtn.EventFilter{
		ProgramID:  *programID,
		Pagination: vtn.Pagination{Limit: *limit},
	})
	if err != nil {
		logger.Fatal("list events", "err", err)
	}

	logger.Info("events listed", "count", len(events))
	for _, event := range events {
		name := event.EventName
		if name == "" {
			name = "(unnamed)"
		}
		start := "-"
		if event.IntervalPeriod != nil {
			start = event.IntervalPeriod.Start.Format(time.RFC3339)
		}
		fmt.Printf("%s\t%s\tprogram=%s\tintervals=%d\tstart=%s\n",
			event.ID, name, event.ProgramID, len(event.Intervals), start)
	}
}
