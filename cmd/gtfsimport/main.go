// Command gtfsimport converts a GTFS static feed into a schedule document.
//
//	gtfsimport -feed https://example.com/gtfs.zip -from STOP_A -to STOP_B [-routes 8,9] [-o weekday.commute]
package main

import (
	"commute-planner/internal/adapters/gtfsfeed"
	"commute-planner/internal/platform/obs"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	feed := flag.String("feed", "", "GTFS static zip: URL or local path")
	from := flag.String("from", "", "stop ID of the commute start")
	to := flag.String("to", "", "stop ID of the commute destination")
	routes := flag.String("routes", "", "comma separated GTFS route IDs to keep (default: all)")
	out := flag.String("o", "", "output file (default: stdout)")
	logLevel := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	logger, err := obs.NewLogger(os.Stderr, *logLevel, "text")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *feed == "" || *from == "" || *to == "" {
		flag.Usage()
		os.Exit(2)
	}

	opts := gtfsfeed.Options{From: *from, To: *to}
	for _, id := range strings.Split(*routes, ",") {
		if id = strings.TrimSpace(id); id != "" {
			opts.RouteIDs = append(opts.RouteIDs, id)
		}
	}

	ctx, cancel := context.WithTimeout(obs.WithLogger(context.Background(), logger), 5*time.Minute)
	defer cancel()

	fetcher := gtfsfeed.NewFetcher(&http.Client{Timeout: 2 * time.Minute})
	doc, stats, err := gtfsfeed.Import(ctx, fetcher, *feed, opts)
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	logger.Info("converted feed",
		"trips", stats.Trips,
		"routes", stats.Routes,
		"past_midnight", stats.PastMidnight,
		"out_of_order", stats.OutOfOrder,
		"duplicates", stats.Duplicates,
		"collisions", stats.Collisions,
	)

	if *out == "" {
		fmt.Print(doc)
		return
	}
	if err := os.WriteFile(*out, []byte(doc), 0o644); err != nil {
		logger.Error("write output", "error", err)
		os.Exit(1)
	}
}
