// Command commute prints every itinerary of a schedule document, fastest
// first. The document is read from the named files, concatenated, or from
// standard input when none are given.
package main

import (
	"commute-planner/internal/domain"
	"commute-planner/internal/platform/obs"
	"commute-planner/internal/report"
	"commute-planner/internal/schedule"
	"commute-planner/internal/services"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("commute", flag.ContinueOnError)
	fs.SetOutput(stderr)
	from := fs.String("from", "", "start location (default: the header's start)")
	to := fs.String("to", "", "destination (default: the header's destination)")
	logLevel := fs.String("log-level", "warn", "debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, err := obs.NewLogger(stderr, *logLevel, "text")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	ctx = obs.WithLogger(ctx, logger)

	lines, err := readInput(fs.Args(), stdin)
	if err != nil {
		logger.Error("read schedule", "error", err)
		return 1
	}

	plan, err := services.PlanCommute(ctx, services.PlanCommuteRequest{
		Lines: lines,
		From:  domain.Location(*from),
		To:    domain.Location(*to),
	})
	if err != nil {
		var syn *domain.SyntaxError
		if errors.As(err, &syn) {
			fmt.Fprintf(stderr, "commute: %s\n", syn)
		} else {
			fmt.Fprintf(stderr, "commute: %v\n", err)
		}
		return 1
	}

	if err := report.Write(stdout, plan.Itineraries); err != nil {
		logger.Error("write report", "error", err)
		return 1
	}

	return 0
}

func readInput(paths []string, stdin io.Reader) ([]string, error) {
	if len(paths) == 0 {
		return schedule.ReadLines(stdin)
	}

	var lines []string
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		more, err := schedule.ReadLines(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		lines = append(lines, more...)
	}
	return lines, nil
}
