// Package engine selects and drives a solving strategy over a built catalog.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/schedulify/engine/internal/catalog"
	"github.com/schedulify/engine/internal/constraint"
	"github.com/schedulify/engine/internal/exact"
	"github.com/schedulify/engine/internal/genetic"
	"github.com/schedulify/engine/internal/sat"
	"github.com/schedulify/engine/internal/schedule"
)

type Strategy string

const (
	StrategyGenetic Strategy = "genetic"
	StrategyExact   Strategy = "exact"
)

type Options struct {
	Strategy    Strategy
	Seed        int64          // genetic determinism seed
	Genetic     genetic.Config // zero value means DefaultConfig
	Budget      time.Duration  // exact wall-clock budget
	TeacherMode bool
	Logger      zerolog.Logger
}

type Result struct {
	Status      schedule.Status
	Assignments []schedule.Assignment
	Records     []schedule.Record
	Hard        int
	Soft        int
	Diagnostics []catalog.Diagnostic
}

// Solve runs the chosen strategy and decodes any solution into display
// records. Both strategies score their output through the same evaluator, so
// reported violation counts are strategy-independent.
func Solve(ctx context.Context, cat *catalog.Catalog, sessions []catalog.Session, opts Options) (*Result, error) {
	switch opts.Strategy {
	case StrategyGenetic, "":
		return solveGenetic(ctx, cat, sessions, opts)
	case StrategyExact:
		return solveExact(cat, sessions, opts)
	default:
		return nil, fmt.Errorf("unknown strategy %q", opts.Strategy)
	}
}

func solveGenetic(ctx context.Context, cat *catalog.Catalog, sessions []catalog.Session, opts Options) (*Result, error) {
	cfg := opts.Genetic
	if cfg.Population == 0 {
		cfg = genetic.DefaultConfig()
	}
	cfg.TeacherMode = opts.TeacherMode

	_, diags := cat.ResolveRooms(sessions)

	rng := rand.New(rand.NewSource(opts.Seed))
	solver, err := genetic.New(cat, sessions, cfg, rng, opts.Logger)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info().
		Int("sessions", len(sessions)).
		Int64("seed", opts.Seed).
		Int("population", cfg.Population).
		Int("generations", cfg.Generations).
		Msg("starting evolutionary search")
	started := time.Now()

	best, err := solver.Solve(ctx)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info().
		Dur("elapsed", time.Since(started)).
		Int("generations", best.Generations).
		Int("hard", best.Hard).
		Int("soft", best.Soft).
		Str("status", string(best.Status)).
		Msg("evolutionary search finished")

	return &Result{
		Status:      best.Status,
		Assignments: best.Assignments,
		Records:     schedule.Decode(cat, sessions, best.Assignments),
		Hard:        best.Hard,
		Soft:        best.Soft,
		Diagnostics: diags,
	}, nil
}

func solveExact(cat *catalog.Catalog, sessions []catalog.Session, opts Options) (*Result, error) {
	budget := opts.Budget
	if budget <= 0 {
		budget = sat.DefaultBudget
	}

	opts.Logger.Info().
		Int("sessions", len(sessions)).
		Dur("budget", budget).
		Msg("starting exact search")
	started := time.Now()

	solver := exact.New(sat.NewGophersatSolver(), budget)
	assignments, status, diags, err := solver.Solve(cat, sessions)
	if err != nil {
		return nil, err
	}

	result := &Result{Status: status, Diagnostics: diags}
	if status == schedule.StatusFeasible {
		result.Assignments = assignments
		result.Records = schedule.Decode(cat, sessions, assignments)
		// The decision model has no objective; score the solution with the
		// shared evaluator so both strategies report comparable numbers.
		eval := constraint.NewEvaluator(cat, sessions, false)
		result.Hard, result.Soft = eval.Score(assignments)
	}

	opts.Logger.Info().
		Dur("elapsed", time.Since(started)).
		Str("status", string(status)).
		Int("hard", result.Hard).
		Int("soft", result.Soft).
		Msg("exact search finished")
	return result, nil
}
