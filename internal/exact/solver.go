// Package exact builds a 0/1 decision model over (session, start-slot, room)
// triples and decides it with a SAT backend under a wall-clock budget.
package exact

import (
	"fmt"
	"time"

	"github.com/schedulify/engine/internal/catalog"
	"github.com/schedulify/engine/internal/constraint"
	"github.com/schedulify/engine/internal/sat"
	"github.com/schedulify/engine/internal/schedule"
)

// variable is one candidate placement; its SAT literal is index+1.
type variable struct {
	session int
	slot    int // absolute week start slot
	room    int
}

type Solver struct {
	backend sat.Solver
	budget  time.Duration
}

func New(backend sat.Solver, budget time.Duration) *Solver {
	return &Solver{backend: backend, budget: budget}
}

type model struct {
	vars      []variable
	bySession [][]int // candidate variable indexes per session
	instance  sat.SAT
}

// Solve decides feasibility for the session list. Sessions whose candidate
// set is empty are reported through the diagnostics and make the model
// infeasible rather than being silently dropped.
func (s *Solver) Solve(cat *catalog.Catalog, sessions []catalog.Session) ([]schedule.Assignment, schedule.Status, []catalog.Diagnostic, error) {
	m, diags := build(cat, sessions)
	if len(diags) > 0 {
		// At least one exactly-one constraint is unsatisfiable by
		// construction; no point burning the budget to prove it.
		return nil, schedule.StatusInfeasible, diags, nil
	}

	solution, status, err := s.backend.Solve(m.instance, s.budget)
	if err != nil {
		return nil, schedule.StatusUnknown, nil, err
	}
	switch status {
	case sat.Unsat:
		return nil, schedule.StatusInfeasible, nil, nil
	case sat.Unknown:
		return nil, schedule.StatusUnknown, nil, nil
	}

	assignments := make([]schedule.Assignment, len(sessions))
	for i := range sessions {
		assignments[i] = schedule.Assignment{Slot: -1, Room: -1, Teacher: -1}
		for _, vi := range m.bySession[i] {
			if solution[vi] {
				assignments[i] = schedule.Assignment{Slot: m.vars[vi].slot, Room: m.vars[vi].room, Teacher: -1}
				break
			}
		}
	}
	return assignments, schedule.StatusFeasible, nil, nil
}

// Instance exposes the CNF encoding, e.g. for a DIMACS dump.
func (s *Solver) Instance(cat *catalog.Catalog, sessions []catalog.Session) (sat.SAT, []catalog.Diagnostic) {
	m, diags := build(cat, sessions)
	return m.instance, diags
}

func build(cat *catalog.Catalog, sessions []catalog.Session) (*model, []catalog.Diagnostic) {
	grid := cat.Grid
	total := grid.TotalSlots()
	overrides := constraint.TimeOverrides(cat, sessions)
	rooms, diags := cat.ResolveRooms(sessions)

	m := &model{bySession: make([][]int, len(sessions))}

	for i, sess := range sessions {
		if len(rooms[i]) == 0 {
			continue
		}
		for abs := 0; abs < total; abs++ {
			_, start := grid.Split(abs)
			if start+sess.Duration > grid.SlotsPerDay {
				continue
			}
			if !overrides[i] && overlapsLunch(grid, start, sess.Duration) {
				continue
			}
			for _, room := range rooms[i] {
				m.bySession[i] = append(m.bySession[i], len(m.vars))
				m.vars = append(m.vars, variable{session: i, slot: abs, room: room})
			}
		}
		if len(m.bySession[i]) == 0 {
			diags = append(diags, noSlotDiagnostic(sess))
		}
	}
	if len(diags) > 0 {
		return m, diags
	}

	m.instance = sat.SAT{Variables: len(m.vars)}

	// Exactly one placement per session.
	for _, candidates := range m.bySession {
		clause := make([]int, len(candidates))
		for j, vi := range candidates {
			clause[j] = vi + 1
		}
		m.instance.Clauses = append(m.instance.Clauses, clause)
		m.instance.Clauses = append(m.instance.Clauses, atMostOne(candidates)...)
	}

	// Occupancy buckets over every slot a candidate would fill.
	roomSlot := map[[2]int][]int{}
	type groupKey struct {
		group string
		abs   int
	}
	groupSlot := map[groupKey]*groupBucket{}

	for vi, v := range m.vars {
		sess := sessions[v.session]
		day, start := grid.Split(v.slot)
		for d := 0; d < sess.Duration; d++ {
			abs := day*grid.SlotsPerDay + start + d

			rk := [2]int{abs, v.room}
			roomSlot[rk] = append(roomSlot[rk], vi)

			gk := groupKey{group: sess.GroupID, abs: abs}
			bucket, ok := groupSlot[gk]
			if !ok {
				bucket = &groupBucket{batches: map[string][]int{}}
				groupSlot[gk] = bucket
			}
			if sess.SubBatch == catalog.AllBatch {
				bucket.all = append(bucket.all, vi)
			} else {
				bucket.batches[sess.SubBatch] = append(bucket.batches[sess.SubBatch], vi)
			}
		}
	}

	// At most one occupant per (room, time).
	for _, occupants := range roomSlot {
		m.instance.Clauses = append(m.instance.Clauses, atMostOne(occupants)...)
	}

	// Per (group, time): All-scope placements exclude each other and every
	// sub-batch; a sub-batch excludes only itself.
	for _, bucket := range groupSlot {
		m.instance.Clauses = append(m.instance.Clauses, atMostOne(bucket.all)...)
		for _, batch := range bucket.batches {
			m.instance.Clauses = append(m.instance.Clauses, atMostOne(batch)...)
			for _, a := range bucket.all {
				for _, b := range batch {
					if a != b {
						m.instance.Clauses = append(m.instance.Clauses, []int{-(a + 1), -(b + 1)})
					}
				}
			}
		}
	}

	return m, nil
}

type groupBucket struct {
	all     []int
	batches map[string][]int
}

// atMostOne encodes pairwise mutual exclusion over variable indexes.
func atMostOne(vars []int) [][]int {
	var clauses [][]int
	for i := 0; i < len(vars)-1; i++ {
		for j := i + 1; j < len(vars); j++ {
			clauses = append(clauses, []int{-(vars[i] + 1), -(vars[j] + 1)})
		}
	}
	return clauses
}

func overlapsLunch(grid catalog.Grid, start, duration int) bool {
	if grid.LunchSlot < 0 {
		return false
	}
	return start <= grid.LunchSlot && grid.LunchSlot < start+duration
}

func noSlotDiagnostic(sess catalog.Session) catalog.Diagnostic {
	return catalog.Diagnostic{
		Severity: catalog.SeverityError,
		Err:      fmt.Errorf("no feasible start slot for %v: duration %d does not fit any lunch-free window", sess.Describe(), sess.Duration),
	}
}
