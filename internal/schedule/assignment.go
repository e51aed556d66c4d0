package schedule

// Assignment binds one session (by position in the session list) to an
// absolute week slot and a room, and optionally a teacher.
type Assignment struct {
	Slot    int
	Room    int
	Teacher int // -1 when teacher allocation is deferred
}

// Status is a solver outcome. Only a zero hard-violation score counts as
// success for callers; the status tells them what the solver could prove.
type Status string

const (
	// StatusFeasible: a complete assignment satisfying every hard rule.
	StatusFeasible Status = "FEASIBLE"
	// StatusInfeasible: proven unsatisfiable (exact strategy only).
	StatusInfeasible Status = "INFEASIBLE"
	// StatusUnknown: nothing proven - the budget ran out, or the
	// metaheuristic's best still carries hard violations.
	StatusUnknown Status = "UNKNOWN"
)
