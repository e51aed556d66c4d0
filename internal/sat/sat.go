package sat

import (
	"fmt"
	"strings"
)

// SAT is a propositional instance in conjunctive normal form. Variables are
// 1-based; a negative literal negates its variable.
type SAT struct {
	Variables int
	Clauses   [][]int
}

// Solution holds one satisfying binding per variable, indexed by variable-1.
type Solution []bool

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}
