package genetic

import "github.com/schedulify/engine/internal/schedule"

// Gene places one session: an absolute week slot, a room index and, in
// teacher mode, a teacher index (-1 otherwise). The genotype is owned by the
// solver instance; there is no process-wide type registration.
type Gene struct {
	Slot    int
	Room    int
	Teacher int
}

type Individual struct {
	Genes []Gene
	Hard  int
	Soft  int
}

func (ind *Individual) clone() *Individual {
	genes := make([]Gene, len(ind.Genes))
	copy(genes, ind.Genes)
	return &Individual{Genes: genes, Hard: ind.Hard, Soft: ind.Soft}
}

// Assignments renders the genotype as the evaluator's assignment vector.
func (ind *Individual) Assignments() []schedule.Assignment {
	assignments := make([]schedule.Assignment, len(ind.Genes))
	for i, g := range ind.Genes {
		assignments[i] = schedule.Assignment{Slot: g.Slot, Room: g.Room, Teacher: g.Teacher}
	}
	return assignments
}
