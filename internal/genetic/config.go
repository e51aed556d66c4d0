// Package genetic evolves a population of candidate timetables scored by the
// shared constraint evaluator.
package genetic

import "fmt"

type Config struct {
	Population  int
	Generations int
	Crossover   float64 // per-pair two-point recombination probability
	Mutation    float64 // per-individual mutation probability
	GeneMut     float64 // per-gene resampling probability once mutating
	Tournament  int     // selection tournament size
	Workers     int     // parallel fitness evaluation workers
	TeacherMode bool    // genes carry a teacher index, teacher rules apply
}

func DefaultConfig() Config {
	return Config{
		Population:  100,
		Generations: 120,
		Crossover:   0.7,
		Mutation:    0.2,
		GeneMut:     0.1,
		Tournament:  3,
		Workers:     4,
	}
}

func (cfg Config) Validate() error {
	if cfg.Population < 2 {
		return fmt.Errorf("population must be at least 2 (got %d)", cfg.Population)
	}
	if cfg.Generations < 1 {
		return fmt.Errorf("generations must be at least 1 (got %d)", cfg.Generations)
	}
	if cfg.Crossover < 0 || cfg.Crossover > 1 {
		return fmt.Errorf("crossover probability out of [0,1]: %v", cfg.Crossover)
	}
	if cfg.Mutation < 0 || cfg.Mutation > 1 {
		return fmt.Errorf("mutation probability out of [0,1]: %v", cfg.Mutation)
	}
	if cfg.GeneMut < 0 || cfg.GeneMut > 1 {
		return fmt.Errorf("gene mutation probability out of [0,1]: %v", cfg.GeneMut)
	}
	if cfg.Tournament < 1 {
		return fmt.Errorf("tournament size must be at least 1 (got %d)", cfg.Tournament)
	}
	return nil
}
