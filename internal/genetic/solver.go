package genetic

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/rs/zerolog"

	"github.com/schedulify/engine/internal/catalog"
	"github.com/schedulify/engine/internal/constraint"
	"github.com/schedulify/engine/internal/schedule"
)

type Solver struct {
	cfg       Config
	cat       *catalog.Catalog
	sessions  []catalog.Session
	eval      *constraint.Evaluator
	roomPools [][]int

	totalSlots int
	rng        *rand.Rand
	log        zerolog.Logger
}

type Result struct {
	Assignments []schedule.Assignment
	Status      schedule.Status
	Hard        int
	Soft        int
	Generations int // generations actually run
}

// New builds a solver over an immutable catalog and session list. The seeded
// rng drives every variation draw, so identical seeds reproduce the evolution
// trajectory bit for bit; fitness evaluation draws nothing from it.
func New(cat *catalog.Catalog, sessions []catalog.Session, cfg Config, rng *rand.Rand, log zerolog.Logger) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("rng must not be nil")
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("nothing to schedule")
	}
	if len(cat.Rooms) == 0 {
		return nil, fmt.Errorf("catalog has no rooms")
	}

	pools, _ := cat.ResolveRooms(sessions)
	for i := range pools {
		// An unplaceable session stays in the run with the full room pool and
		// a standing capacity/type violation; the caller reports it from the
		// resolver diagnostics.
		if len(pools[i]) == 0 {
			pools[i] = allRooms(len(cat.Rooms))
		}
	}

	return &Solver{
		cfg:        cfg,
		cat:        cat,
		sessions:   sessions,
		eval:       constraint.NewEvaluator(cat, sessions, cfg.TeacherMode),
		roomPools:  pools,
		totalSlots: cat.Grid.TotalSlots(),
		rng:        rng,
		log:        log,
	}, nil
}

// Solve runs the evolution loop: tournament selection, two-point
// recombination, three-kind mutation. The single best individual ever seen is
// the output regardless of the final population. Terminates on the generation
// budget, on a hard-violation-free best, or cooperatively between generations
// when ctx is cancelled.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	population := make([]*Individual, s.cfg.Population)
	for i := range population {
		genes := make([]Gene, len(s.sessions))
		for j := range genes {
			genes[j] = s.randomGene(j)
		}
		population[i] = &Individual{Genes: genes}
	}
	s.evaluate(population)

	best := fittest(population).clone()
	generations := 0

	for gen := 1; gen <= s.cfg.Generations && best.Hard > 0; gen++ {
		if ctx.Err() != nil {
			s.log.Warn().Int("generation", gen).Msg("search cancelled, returning best so far")
			break
		}

		offspring := make([]*Individual, s.cfg.Population)
		for i := range offspring {
			offspring[i] = s.tournament(population)
		}
		for i := 0; i+1 < len(offspring); i += 2 {
			if s.rng.Float64() < s.cfg.Crossover {
				s.crossover(offspring[i], offspring[i+1])
			}
		}
		for _, ind := range offspring {
			if s.rng.Float64() < s.cfg.Mutation {
				s.mutate(ind)
			}
		}

		s.evaluate(offspring)
		population = offspring
		generations = gen

		if candidate := fittest(population); penalty(candidate) < penalty(best) {
			best = candidate.clone()
		}
		if gen%20 == 0 {
			s.log.Debug().Int("generation", gen).Int("hard", best.Hard).Int("soft", best.Soft).Msg("evolution progress")
		}
	}

	status := schedule.StatusUnknown
	if best.Hard == 0 {
		status = schedule.StatusFeasible
	}
	return &Result{
		Assignments: best.Assignments(),
		Status:      status,
		Hard:        best.Hard,
		Soft:        best.Soft,
		Generations: generations,
	}, nil
}

// evaluate scores a population in parallel. The evaluator is pure, so the
// worker count never changes results.
func (s *Solver) evaluate(population []*Individual) {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan int, len(population))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ind := population[i]
				ind.Hard, ind.Soft = s.eval.Score(ind.Assignments())
			}
		}()
	}
	for i := range population {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func fittest(population []*Individual) *Individual {
	best := population[0]
	for _, ind := range population[1:] {
		if penalty(ind) < penalty(best) {
			best = ind
		}
	}
	return best
}

func allRooms(n int) []int {
	rooms := make([]int, n)
	for i := range rooms {
		rooms[i] = i
	}
	return rooms
}
