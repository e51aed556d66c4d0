package sat

import "time"

type Status int

const (
	// Unknown: the budget ran out before the instance was decided.
	Unknown Status = iota
	Sat
	Unsat
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Solver decides a SAT instance within a wall-clock budget. Implementations
// must return rather than hang once the budget is exhausted; the Solution is
// non-nil only for Sat.
type Solver interface {
	Solve(instance SAT, budget time.Duration) (Solution, Status, error)
}
