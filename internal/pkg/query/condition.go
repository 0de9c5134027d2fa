package query

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of a Condition.
type Kind int

const (
	// KindEq is an equality comparison (field = value).
	KindEq Kind = iota
	// KindInSet is a set-membership test with the whole set bound as one array parameter.
	KindInSet
	// KindCompare is a numeric comparison (field >= value, field <= value).
	KindCompare
	// KindContainsAny is an OR group of case-insensitive substring tests, one parameter per token.
	KindContainsAny
	// KindPercentCompare compares the numeric magnitude of a percentage-formatted text column.
	KindPercentCompare
	// KindIsNull checks field IS NULL.
	KindIsNull
	// KindIsNotNull checks field IS NOT NULL.
	KindIsNotNull
)

func (k Kind) String() string {
	switch k {
	case KindEq:
		return "eq"
	case KindInSet:
		return "in_set"
	case KindCompare:
		return "compare"
	case KindContainsAny:
		return "contains_any"
	case KindPercentCompare:
		return "percent_compare"
	case KindIsNull:
		return "is_null"
	case KindIsNotNull:
		return "is_not_null"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Op is a comparison operator for KindCompare and KindPercentCompare.
type Op int

const (
	// OpGte is >=.
	OpGte Op = iota
	// OpLte is <=.
	OpLte
)

// Symbol returns the SQL operator.
func (o Op) Symbol() string {
	if o == OpLte {
		return "<="
	}
	return ">="
}

// Condition represents a WHERE clause condition.
// It is a tagged variant: Kind decides how the fragment is rendered and how
// many parameter slots it consumes. Fragment text and parameters are always
// produced together by SQL so the two can never drift apart.
type Condition struct {
	kind   Kind
	field  string
	op     Op
	values []interface{}
	tokens []string
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("category", "Men") generates "category = @p0"
func Eq(field string, value interface{}) Condition {
	return Condition{kind: KindEq, field: field, values: []interface{}{value}}
}

// In creates a set-membership condition. The set is bound as a single array
// parameter so the parameter count does not depend on the set size.
// Example (Spanner): In("type", []string{"Shirt", "Jeans"}) generates "type IN UNNEST(@p0)"
func In(field string, set []string) Condition {
	cp := make([]string, len(set))
	copy(cp, set)
	return Condition{kind: KindInSet, field: field, values: []interface{}{cp}}
}

// Gte creates a numeric lower bound condition (field >= value).
func Gte(field string, value float64) Condition {
	return Condition{kind: KindCompare, field: field, op: OpGte, values: []interface{}{value}}
}

// Lte creates a numeric upper bound condition (field <= value).
func Lte(field string, value float64) Condition {
	return Condition{kind: KindCompare, field: field, op: OpLte, values: []interface{}{value}}
}

// ContainsAny creates an OR group of case-insensitive substring tests against
// a text column, one parameter per token.
// Example (Spanner): ContainsAny("colors", "Red", "Blue") generates
// "(LOWER(colors) LIKE @p0 OR LOWER(colors) LIKE @p1)" with "%red%" and "%blue%".
//
// A token matches anywhere in the stored text, so "red" also matches
// "Dark Red" and "Redwood".
func ContainsAny(field string, tokens ...string) Condition {
	lowered := make([]string, 0, len(tokens))
	params := make([]interface{}, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		lowered = append(lowered, tok)
		params = append(params, "%"+EscapeLike(tok)+"%")
	}
	return Condition{kind: KindContainsAny, field: field, values: params, tokens: lowered}
}

// PercentGte compares the number embedded in a percentage-formatted text
// column ("40%", "40% off") against value. Rows without a number never match.
func PercentGte(field string, value float64) Condition {
	return Condition{kind: KindPercentCompare, field: field, op: OpGte, values: []interface{}{value}}
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("subcategory") generates "subcategory IS NULL"
func IsNull(field string) Condition {
	return Condition{kind: KindIsNull, field: field}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
// Example: IsNotNull("subcategory") generates "subcategory IS NOT NULL"
func IsNotNull(field string) Condition {
	return Condition{kind: KindIsNotNull, field: field}
}

// Kind returns the condition variant.
func (c Condition) Kind() Kind { return c.kind }

// Field returns the column the condition applies to.
func (c Condition) Field() string { return c.field }

// Op returns the comparison operator for comparison kinds.
func (c Condition) Op() Op { return c.op }

// Value returns the single bound value of Eq, In, compare and percent kinds.
func (c Condition) Value() interface{} {
	if len(c.values) == 0 {
		return nil
	}
	return c.values[0]
}

// Tokens returns the lowercased tokens of a ContainsAny condition.
func (c Condition) Tokens() []string {
	out := make([]string, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// Arity returns the number of parameter slots the condition consumes.
func (c Condition) Arity() int { return len(c.values) }

// SQL returns the SQL fragment and the parameters it binds, in order.
// paramIndex is the position of the first parameter in the enclosing statement.
func (c Condition) SQL(d Dialect, paramIndex int) (string, []interface{}) {
	params := make([]interface{}, len(c.values))
	copy(params, c.values)

	switch c.kind {
	case KindEq:
		return fmt.Sprintf("%s = %s", c.field, d.Placeholder(paramIndex)), params
	case KindInSet:
		return d.InSet(c.field, d.Placeholder(paramIndex)), params
	case KindCompare:
		return fmt.Sprintf("%s %s %s", c.field, c.op.Symbol(), d.Placeholder(paramIndex)), params
	case KindPercentCompare:
		return fmt.Sprintf("%s %s %s", d.PercentValue(c.field), c.op.Symbol(), d.Placeholder(paramIndex)), params
	case KindContainsAny:
		parts := make([]string, len(c.values))
		for i := range c.values {
			parts[i] = d.ContainsFold(c.field, d.Placeholder(paramIndex+i))
		}
		return "(" + strings.Join(parts, " OR ") + ")", params
	case KindIsNull:
		return fmt.Sprintf("%s IS NULL", c.field), params
	case KindIsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", c.field), params
	default:
		panic(fmt.Sprintf("query: unknown condition kind %s", c.kind))
	}
}

// EscapeLike escapes LIKE wildcards so s matches literally inside a pattern.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
