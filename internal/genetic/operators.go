package genetic

import "github.com/schedulify/engine/internal/constraint"

// tournament picks cfg.Tournament individuals at random with replacement and
// returns a copy of the best.
func (s *Solver) tournament(population []*Individual) *Individual {
	best := population[s.rng.Intn(len(population))]
	for i := 1; i < s.cfg.Tournament; i++ {
		challenger := population[s.rng.Intn(len(population))]
		if penalty(challenger) < penalty(best) {
			best = challenger
		}
	}
	return best.clone()
}

// crossover swaps a contiguous gene range between two parents in place. A
// safe no-op below two genes.
func (s *Solver) crossover(a, b *Individual) {
	size := len(a.Genes)
	if size < 2 {
		return
	}
	point1 := s.rng.Intn(size)
	point2 := s.rng.Intn(size - 1)
	if point2 >= point1 {
		point2++
	} else {
		point1, point2 = point2, point1
	}
	for i := point1; i < point2; i++ {
		a.Genes[i], b.Genes[i] = b.Genes[i], a.Genes[i]
	}
}

// mutate resamples genes independently with probability cfg.GeneMut, choosing
// uniformly among the perturbation kinds: room (respecting admissibility),
// slot, or - in teacher mode - teacher among the qualified set.
func (s *Solver) mutate(ind *Individual) {
	kinds := 2
	if s.cfg.TeacherMode {
		kinds = 3
	}
	for i := range ind.Genes {
		if s.rng.Float64() >= s.cfg.GeneMut {
			continue
		}
		switch s.rng.Intn(kinds) {
		case 0:
			ind.Genes[i].Room = s.randomRoom(i)
		case 1:
			ind.Genes[i].Slot = s.rng.Intn(s.totalSlots)
		default:
			ind.Genes[i].Teacher = s.randomTeacher(i)
		}
	}
}

func (s *Solver) randomGene(session int) Gene {
	return Gene{
		Slot:    s.rng.Intn(s.totalSlots),
		Room:    s.randomRoom(session),
		Teacher: s.randomTeacher(session),
	}
}

func (s *Solver) randomRoom(session int) int {
	pool := s.roomPools[session]
	return pool[s.rng.Intn(len(pool))]
}

func (s *Solver) randomTeacher(session int) int {
	if !s.cfg.TeacherMode {
		return -1
	}
	qualified := s.sessions[session].Teachers
	if len(qualified) == 0 {
		return -1
	}
	return qualified[s.rng.Intn(len(qualified))]
}

func penalty(ind *Individual) int {
	return constraint.Combined(ind.Hard, ind.Soft)
}
