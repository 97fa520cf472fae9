package cp

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// DefaultMaxTime is used when Parameters.MaxTime is not set
const DefaultMaxTime = 30 * time.Second

// Status is the result of a solve
type Status int

const (
	// Unknown means the budget ran out before any solution was found
	Unknown Status = iota
	// Infeasible means the model was proven to have no solution
	Infeasible
	// Feasible means a solution was found but not proven optimal
	Feasible
	// Optimal means the solution was proven optimal, or the model has no objective
	Optimal
)

func (s Status) String() string {
	switch s {
	case Infeasible:
		return "INFEASIBLE"
	case Feasible:
		return "FEASIBLE"
	case Optimal:
		return "OPTIMAL"
	}
	return "UNKNOWN"
}

// Parameters control a solve
type Parameters struct {
	// MaxTime is the wall clock budget for the whole solve, including every improvement step
	MaxTime time.Duration
}

// Response holds the status and, when a solution was found, its values
type Response struct {
	Status    Status
	Objective int
	WallTime  time.Duration

	// Solutions is the number of improving solutions found
	Solutions int

	values []bool
}

// Value returns the value of x in the best solution found
func (r *Response) Value(x IntVar) int {
	for i, l := range x.v.eq {
		if r.litValue(l) {
			return x.v.lo + i
		}
	}
	return x.v.lo
}

// BooleanValue returns the value of b in the best solution found
func (r *Response) BooleanValue(b BoolVar) bool {
	return r.litValue(b.lit)
}

func (r *Response) litValue(l z.Lit) bool {
	v := int(l.Var())
	if v >= len(r.values) {
		return false
	}
	if l.IsPos() {
		return r.values[v]
	}
	return !r.values[v]
}

func (r *Response) evaluate(terms []BoolTerm) int {
	total := 0
	for _, t := range terms {
		if r.BooleanValue(t.Var) {
			total += t.Coef
		}
	}
	return total
}

// Solve searches for a solution of m within the time budget. A model with
// recorded construction errors is rejected with ErrModelInvalid. Running out
// of time is not an error: the response reports Feasible or Unknown. The
// context is checked between improvement steps.
func Solve(ctx context.Context, m *Model, params Parameters) (*Response, error) {
	if err := m.Err(); err != nil {
		return nil, err
	}

	maxTime := params.MaxTime
	if maxTime <= 0 {
		maxTime = DefaultMaxTime
	}

	start := time.Now()
	deadline := start.Add(maxTime)

	g := gini.New()
	add := func(c []z.Lit) {
		for _, l := range c {
			g.Add(l)
		}
		g.Add(z.LitNull)
	}
	for _, c := range m.clauses {
		add(c)
	}
	// Make the solver allocate every declared variable, including unconstrained ones.
	add([]z.Lit{m.top, z.Var(m.enc.vars).Pos()})

	bound := encoder{vars: m.enc.vars, top: m.top, emit: add}
	objective, _ := m.weightedTerms("objective", m.objective)

	resp := &Response{Status: Unknown}
	for ctx.Err() == nil {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}

		result := g.GoSolve().Try(remaining)
		if result == 0 {
			break
		}
		if result < 0 {
			if resp.Solutions > 0 {
				resp.Status = Optimal
			} else {
				resp.Status = Infeasible
			}
			break
		}

		values := make([]bool, m.enc.vars+1)
		for v := 1; v <= m.enc.vars; v++ {
			values[v] = g.Value(z.Var(v).Pos())
		}
		resp.values = values
		resp.Solutions++
		resp.Status = Feasible

		if !m.hasObjective {
			resp.Status = Optimal
			break
		}
		resp.Objective = resp.evaluate(m.objective)
		if resp.Objective == 0 {
			resp.Status = Optimal
			break
		}
		bound.atMost(objective, resp.Objective-1)
	}

	resp.WallTime = time.Since(start)
	return resp, nil
}
