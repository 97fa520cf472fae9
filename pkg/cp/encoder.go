package cp

import "github.com/go-air/gini/z"

// encoder allocates SAT variables and emits clauses to a sink. The model uses
// one that buffers clauses; Solve uses one that feeds the live solver so the
// objective bound can be tightened between iterations.
type encoder struct {
	vars int
	top  z.Lit
	emit func(clause []z.Lit)
}

func (e *encoder) fresh() z.Lit {
	e.vars++
	return z.Var(e.vars).Pos()
}

// clause emits the disjunction of lits. An empty clause makes the formula unsatisfiable.
func (e *encoder) clause(lits ...z.Lit) {
	if len(lits) == 0 {
		e.emit([]z.Lit{e.top.Not()})
		return
	}
	c := make([]z.Lit, len(lits))
	copy(c, lits)
	e.emit(c)
}

func (e *encoder) atLeastOne(lits []z.Lit) {
	e.clause(lits...)
}

// atMostOne uses pairwise exclusion for short lists and a sequential counter otherwise.
func (e *encoder) atMostOne(lits []z.Lit) {
	n := len(lits)
	if n <= 1 {
		return
	}
	if n <= 5 {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				e.clause(lits[i].Not(), lits[j].Not())
			}
		}
		return
	}

	s := make([]z.Lit, n-1)
	for i := range s {
		s[i] = e.fresh()
	}
	e.clause(lits[0].Not(), s[0])
	for i := 1; i < n-1; i++ {
		e.clause(lits[i].Not(), s[i])
		e.clause(s[i-1].Not(), s[i])
		e.clause(lits[i].Not(), s[i-1].Not())
	}
	e.clause(lits[n-1].Not(), s[n-2].Not())
}

type weighted struct {
	lit    z.Lit
	weight int
}

// atMost encodes sum(weight_i * lit_i) <= bound with a sequential weight counter.
// prev[j] holds "the weighted sum of the terms seen so far is at least j".
// Weights must be non-negative.
func (e *encoder) atMost(terms []weighted, bound int) {
	if bound < 0 {
		e.clause()
		return
	}

	var live []weighted
	for _, t := range terms {
		switch {
		case t.weight == 0:
		case t.weight > bound:
			e.clause(t.lit.Not())
		default:
			live = append(live, t)
		}
	}

	var prev []z.Lit
	for i, t := range live {
		w := t.weight
		if prev != nil {
			e.clause(t.lit.Not(), prev[bound+1-w].Not())
		}
		if i == len(live)-1 {
			break
		}

		cur := make([]z.Lit, bound+1)
		for j := 1; j <= bound; j++ {
			cur[j] = e.fresh()
		}
		for j := 1; j <= bound; j++ {
			if prev != nil {
				e.clause(prev[j].Not(), cur[j])
			}
			if j <= w {
				e.clause(t.lit.Not(), cur[j])
			} else if prev != nil {
				e.clause(t.lit.Not(), prev[j-w].Not(), cur[j])
			}
		}
		prev = cur
	}
}
