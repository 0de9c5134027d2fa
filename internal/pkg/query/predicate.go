package query

import "strings"

// Predicate is an ordered list of conditions combined with AND.
// It is immutable once built; the same instance is shared by the count and
// page statements of a listing so both bind identical parameters in the same order.
type Predicate struct {
	conds []Condition
}

// NewPredicate creates a Predicate from conditions in the given order.
func NewPredicate(conds ...Condition) *Predicate {
	cp := make([]Condition, len(conds))
	copy(cp, conds)
	return &Predicate{conds: cp}
}

// Conditions returns a copy of the conditions.
func (p *Predicate) Conditions() []Condition {
	if p == nil {
		return nil
	}
	out := make([]Condition, len(p.conds))
	copy(out, p.conds)
	return out
}

// Len returns the number of conditions.
func (p *Predicate) Len() int {
	if p == nil {
		return 0
	}
	return len(p.conds)
}

// ParamCount returns the number of parameters the predicate binds.
func (p *Predicate) ParamCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, c := range p.conds {
		n += c.Arity()
	}
	return n
}

// SQL renders the predicate starting at paramIndex.
// The returned fragment is empty when there are no conditions.
func (p *Predicate) SQL(d Dialect, paramIndex int) (string, []interface{}) {
	if p.Len() == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(p.conds))
	params := make([]interface{}, 0, p.ParamCount())
	for _, c := range p.conds {
		fragment, condParams := c.SQL(d, paramIndex+len(params))
		parts = append(parts, fragment)
		params = append(params, condParams...)
	}
	return strings.Join(parts, " AND "), params
}
