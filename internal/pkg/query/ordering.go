package query

import "strings"

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// OrderTerm is one ORDER BY key.
type OrderTerm struct {
	Field     string
	Dir       Direction
	Percent   bool // order by the number embedded in a "20%" text column
	NullsLast bool
}

// By creates a plain column ordering term.
func By(field string, dir Direction) OrderTerm {
	return OrderTerm{Field: field, Dir: dir}
}

// ByPercent orders by the numeric magnitude of a percentage-formatted text
// column; rows without a number sort after all others.
func ByPercent(field string, dir Direction) OrderTerm {
	return OrderTerm{Field: field, Dir: dir, Percent: true, NullsLast: true}
}

// Ordering is an ordered list of sort keys.
type Ordering []OrderTerm

// SQL renders the ORDER BY list without the keyword.
func (o Ordering) SQL(d Dialect) string {
	parts := make([]string, 0, len(o))
	for _, t := range o {
		expr := t.Field
		if t.Percent {
			expr = d.PercentValue(t.Field)
		}
		if t.NullsLast {
			parts = append(parts, d.OrderNullsLast(expr, t.Dir))
			continue
		}
		parts = append(parts, expr+" "+t.Dir.String())
	}
	return strings.Join(parts, ", ")
}
