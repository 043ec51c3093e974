package services

import (
	"commute-planner/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ScheduleResult is the outcome of planning one stored schedule. Err holds a
// per-schedule failure such as a missing schedule or a malformed document.
type ScheduleResult struct {
	Name string
	Plan *CommutePlan
	Err  error
}

type PlanSchedulesRequest struct {
	Names       []string
	Concurrency int
}

// PlanSchedules plans several stored schedules concurrently, each between its
// own header endpoints. Results are returned in request order. Failures of a
// single schedule are reported in its result; only cancellation of ctx fails
// the whole call.
func PlanSchedules(
	ctx context.Context,
	req PlanSchedulesRequest,
	repo ports.ScheduleRepository,
	cache ports.GraphCache,
) ([]ScheduleResult, error) {
	if repo == nil {
		return nil, errors.New("plan schedules: repository must be non-nil")
	}

	names := make([]string, 0, len(req.Names))
	seen := make(map[string]struct{}, len(req.Names))
	for _, n := range req.Names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}

	if len(names) == 0 {
		return []ScheduleResult{}, nil
	}

	limit := req.Concurrency
	if limit <= 0 {
		limit = 5
	}

	results := make([]ScheduleResult, len(names))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i] = ScheduleResult{Name: name, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			plan, err := PlanStoredSchedule(ctx, name, "", "", repo, cache)
			results[i] = ScheduleResult{Name: name, Plan: plan, Err: err}
		}(i, name)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("plan schedules: %w", err)
	}

	return results, nil
}
