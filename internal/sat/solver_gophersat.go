package sat

import (
	"time"

	"github.com/crillab/gophersat/solver"
)

// DefaultBudget bounds a solve when the caller passes no budget of its own.
const DefaultBudget = 120 * time.Second

type gophersatSolver struct{}

// NewGophersatSolver returns an in-process CDCL solver backend.
func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (g *gophersatSolver) Solve(instance SAT, budget time.Duration) (Solution, Status, error) {
	if budget <= 0 {
		budget = DefaultBudget
	}

	pb := solver.ParseSlice(instance.Clauses)

	// Optimal stops as soon as a model of cost 0 is found; for a pure
	// decision instance that is the first model. The stop channel carries the
	// wall-clock budget down into the search loop.
	stop := make(chan struct{})
	timer := time.AfterFunc(budget, func() { close(stop) })
	defer timer.Stop()

	result := solver.New(pb).Optimal(nil, stop)
	switch result.Status {
	case solver.Sat:
		solution := make(Solution, instance.Variables)
		for v := 1; v <= instance.Variables; v++ {
			if v-1 < len(result.Model) && result.Model[v-1] {
				solution[v-1] = true
			}
		}
		return solution, Sat, nil
	case solver.Unsat:
		return nil, Unsat, nil
	default:
		return nil, Unknown, nil
	}
}
