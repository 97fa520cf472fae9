// Package cp is a small constraint programming layer over the gini SAT solver.
//
// Integer variables are channelled between a one-hot ("x == v") and an order
// ("x >= v") encoding, so equality, ordering and element constraints stay
// linear in the domain size. Weighted sums over booleans use a sequential
// weight counter. Minimisation runs as a descent: every solution found
// tightens an upper bound on the objective until the solver proves no better
// one exists or the time budget runs out.
package cp

import (
	"errors"
	"fmt"

	"github.com/go-air/gini/z"
)

// ErrModelInvalid is returned by Solve when the model was built incorrectly.
var ErrModelInvalid = errors.New("invalid model")

// maxTableSize caps the number of rows AddLinearEquality may enumerate.
const maxTableSize = 1 << 16

// BoolVar is a boolean decision variable or its negation
type BoolVar struct {
	lit z.Lit
}

// Not returns the negation of b
func (b BoolVar) Not() BoolVar {
	return BoolVar{lit: b.lit.Not()}
}

// IntVar is an integer decision variable over a contiguous domain
type IntVar struct {
	v *intVar
}

// Domain returns the inclusive bounds of the variable
func (x IntVar) Domain() (lo, hi int) {
	return x.v.lo, x.v.hi
}

// Name returns the name the variable was declared with
func (x IntVar) Name() string {
	return x.v.name
}

type intVar struct {
	name   string
	lo, hi int

	// eq[i] <=> x == lo+i
	eq []z.Lit

	// ge[i] <=> x >= lo+i, with ge[0] true and ge[len(eq)] false
	ge []z.Lit
}

// BoolTerm is one coefficient * boolean product of a linear expression
type BoolTerm struct {
	Coef int
	Var  BoolVar
}

// IntTerm is one coefficient * integer product of a linear expression
type IntTerm struct {
	Coef int
	Var  IntVar
}

// Model collects variables, constraints and an optional objective
type Model struct {
	enc     encoder
	clauses [][]z.Lit
	top     z.Lit

	objective    []BoolTerm
	hasObjective bool

	errs []error
}

// NewModel creates an empty model
func NewModel() *Model {
	m := &Model{}
	m.enc.emit = func(c []z.Lit) {
		m.clauses = append(m.clauses, c)
	}
	m.top = m.enc.fresh()
	m.enc.top = m.top
	m.enc.clause(m.top)
	return m
}

// Err returns the construction errors recorded so far, joined, wrapped in ErrModelInvalid
func (m *Model) Err() error {
	if len(m.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrModelInvalid, errors.Join(m.errs...))
}

func (m *Model) fail(format string, args ...any) {
	m.errs = append(m.errs, fmt.Errorf(format, args...))
}

// NumVars returns the number of SAT variables allocated
func (m *Model) NumVars() int {
	return m.enc.vars
}

// NumClauses returns the number of clauses emitted
func (m *Model) NumClauses() int {
	return len(m.clauses)
}

// True returns the constant true literal
func (m *Model) True() BoolVar {
	return BoolVar{lit: m.top}
}

// False returns the constant false literal
func (m *Model) False() BoolVar {
	return BoolVar{lit: m.top.Not()}
}

// NewBoolVar declares a boolean variable
func (m *Model) NewBoolVar(name string) BoolVar {
	return BoolVar{lit: m.enc.fresh()}
}

// NewIntVar declares an integer variable with domain [lo, hi]
func (m *Model) NewIntVar(lo, hi int, name string) IntVar {
	if hi < lo {
		m.fail("int var %s: empty domain [%d, %d]", name, lo, hi)
		hi = lo
	}

	n := hi - lo + 1
	v := &intVar{
		name: name,
		lo:   lo,
		hi:   hi,
		eq:   make([]z.Lit, n),
		ge:   make([]z.Lit, n+1),
	}
	for i := range v.eq {
		v.eq[i] = m.enc.fresh()
	}
	v.ge[0] = m.top
	v.ge[n] = m.top.Not()
	for i := 1; i < n; i++ {
		v.ge[i] = m.enc.fresh()
	}

	for i := 1; i < n-1; i++ {
		m.enc.clause(v.ge[i+1].Not(), v.ge[i])
	}
	for i := 0; i < n; i++ {
		m.enc.clause(v.eq[i].Not(), v.ge[i])
		m.enc.clause(v.eq[i].Not(), v.ge[i+1].Not())
		m.enc.clause(v.ge[i].Not(), v.ge[i+1], v.eq[i])
	}

	return IntVar{v: v}
}

// eqLit returns the literal for x == value
func (v *intVar) eqLit(top z.Lit, value int) z.Lit {
	if value < v.lo || value > v.hi {
		return top.Not()
	}
	return v.eq[value-v.lo]
}

// geLit returns the literal for x >= value
func (v *intVar) geLit(top z.Lit, value int) z.Lit {
	if value <= v.lo {
		return top
	}
	if value > v.hi {
		return top.Not()
	}
	return v.ge[value-v.lo]
}

func lits(vars []BoolVar) []z.Lit {
	out := make([]z.Lit, len(vars))
	for i, b := range vars {
		out[i] = b.lit
	}
	return out
}

func negated(vars []BoolVar) []z.Lit {
	out := make([]z.Lit, len(vars))
	for i, b := range vars {
		out[i] = b.lit.Not()
	}
	return out
}

// AddExactlyOne requires exactly one of vars to be true
func (m *Model) AddExactlyOne(vars ...BoolVar) {
	ls := lits(vars)
	m.enc.atLeastOne(ls)
	m.enc.atMostOne(ls)
}

// AddBoolOr requires at least one of vars to be true
func (m *Model) AddBoolOr(vars ...BoolVar) {
	m.enc.clause(lits(vars)...)
}

// AddImplication requires a => b
func (m *Model) AddImplication(a, b BoolVar) {
	m.enc.clause(a.lit.Not(), b.lit)
}

// AddMaxEquality requires target == max(vars); an empty list forces target false
func (m *Model) AddMaxEquality(target BoolVar, vars []BoolVar) {
	for _, b := range vars {
		m.enc.clause(b.lit.Not(), target.lit)
	}
	m.enc.clause(append([]z.Lit{target.lit.Not()}, lits(vars)...)...)
}

// AddElement requires vars[index] == target. Every value in the domain of
// index must address an element of vars.
func (m *Model) AddElement(index IntVar, vars []BoolVar, target BoolVar) {
	x := index.v
	if x.lo < 0 || x.hi >= len(vars) {
		m.fail("element %s: domain [%d, %d] outside array of length %d", x.name, x.lo, x.hi, len(vars))
		return
	}
	for value := x.lo; value <= x.hi; value++ {
		sel := x.eqLit(m.top, value)
		elem := vars[value].lit
		m.enc.clause(sel.Not(), elem.Not(), target.lit)
		m.enc.clause(sel.Not(), elem, target.lit.Not())
	}
}

// AddLessOrEqual requires a <= b whenever every enforcement literal is true
func (m *Model) AddLessOrEqual(a, b IntVar, enforce ...BoolVar) {
	guard := negated(enforce)
	from := min(a.v.lo, b.v.lo) + 1
	to := max(a.v.hi, b.v.hi)
	for value := from; value <= to; value++ {
		clause := append(append([]z.Lit{}, guard...), a.v.geLit(m.top, value).Not(), b.v.geLit(m.top, value))
		m.enc.clause(clause...)
	}
}

// AddEquality requires a == b
func (m *Model) AddEquality(a, b IntVar) {
	m.AddLessOrEqual(a, b)
	m.AddLessOrEqual(b, a)
}

// AddLinearEquality requires target == sum(terms) + offset. The relation is
// tabulated over the joint domain of the terms.
func (m *Model) AddLinearEquality(target IntVar, terms []IntTerm, offset int) {
	rows := 1
	for _, t := range terms {
		rows *= t.Var.v.hi - t.Var.v.lo + 1
		if rows > maxTableSize {
			m.fail("linear equality on %s: joint domain exceeds %d rows", target.v.name, maxTableSize)
			return
		}
	}

	var walk func(i, value int, prefix []z.Lit)
	walk = func(i, value int, prefix []z.Lit) {
		if i == len(terms) {
			m.enc.clause(append(prefix, target.v.eqLit(m.top, value))...)
			return
		}
		t := terms[i]
		for d := t.Var.v.lo; d <= t.Var.v.hi; d++ {
			walk(i+1, value+t.Coef*d, append(prefix, t.Var.v.eqLit(m.top, d).Not()))
		}
	}
	walk(0, offset, make([]z.Lit, 0, len(terms)+1))
}

func (m *Model) weightedTerms(what string, terms []BoolTerm) ([]weighted, bool) {
	out := make([]weighted, 0, len(terms))
	for _, t := range terms {
		if t.Coef < 0 {
			m.fail("%s: negative coefficient %d", what, t.Coef)
			return nil, false
		}
		out = append(out, weighted{lit: t.Var.lit, weight: t.Coef})
	}
	return out, true
}

// AddLinearLessOrEqual requires sum(terms) <= bound. Coefficients must be non-negative.
func (m *Model) AddLinearLessOrEqual(terms []BoolTerm, bound int) {
	ws, ok := m.weightedTerms("linear constraint", terms)
	if !ok {
		return
	}
	m.enc.atMost(ws, bound)
}

// Minimize sets the objective to sum(terms). Coefficients must be non-negative.
func (m *Model) Minimize(terms []BoolTerm) {
	if _, ok := m.weightedTerms("objective", terms); !ok {
		return
	}
	m.objective = append([]BoolTerm(nil), terms...)
	m.hasObjective = true
}
