package query

import "fmt"

// Dialect renders the parts of a statement that differ between SQL engines.
// Parameter indexes are zero-based positions in the statement's parameter list.
type Dialect interface {
	// Name identifies the dialect in logs and metrics.
	Name() string
	// Placeholder returns the parameter reference for the given position.
	Placeholder(index int) string
	// InSet renders a membership test against an array-valued parameter.
	InSet(field, placeholder string) string
	// ContainsFold renders a case-insensitive LIKE against a lowercase pattern.
	ContainsFold(field, placeholder string) string
	// PercentValue renders the numeric magnitude of a text column such as "20%".
	// Text without a number yields NULL.
	PercentValue(field string) string
	// OrderNullsLast renders one ORDER BY term that sorts NULLs after all values.
	OrderNullsLast(expr string, dir Direction) string
}

// percentPattern matches the first decimal number in a percentage string.
const percentPattern = `[0-9]+(?:\.[0-9]+)?`

// Spanner renders GoogleSQL for Cloud Spanner with named @pN parameters.
var Spanner Dialect = spannerDialect{}

// Postgres renders PostgreSQL with positional $N parameters.
var Postgres Dialect = postgresDialect{}

type spannerDialect struct{}

func (spannerDialect) Name() string { return "spanner" }

func (spannerDialect) Placeholder(index int) string { return "@" + SpannerParamName(index) }

func (spannerDialect) InSet(field, placeholder string) string {
	return fmt.Sprintf("%s IN UNNEST(%s)", field, placeholder)
}

func (spannerDialect) ContainsFold(field, placeholder string) string {
	return fmt.Sprintf("LOWER(%s) LIKE %s", field, placeholder)
}

func (spannerDialect) PercentValue(field string) string {
	return fmt.Sprintf("SAFE_CAST(REGEXP_EXTRACT(%s, r'%s') AS FLOAT64)", field, percentPattern)
}

func (spannerDialect) OrderNullsLast(expr string, dir Direction) string {
	return fmt.Sprintf("%s IS NULL, %s %s", expr, expr, dir)
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Placeholder(index int) string { return fmt.Sprintf("$%d", index+1) }

func (postgresDialect) InSet(field, placeholder string) string {
	return fmt.Sprintf("%s = ANY(%s)", field, placeholder)
}

func (postgresDialect) ContainsFold(field, placeholder string) string {
	return fmt.Sprintf("%s ILIKE %s", field, placeholder)
}

func (postgresDialect) PercentValue(field string) string {
	return fmt.Sprintf("CAST(substring(%s from '%s') AS NUMERIC)", field, percentPattern)
}

func (postgresDialect) OrderNullsLast(expr string, dir Direction) string {
	return fmt.Sprintf("%s %s NULLS LAST", expr, dir)
}

// SpannerParamName returns the Spanner parameter name for a position.
func SpannerParamName(index int) string {
	return fmt.Sprintf("p%d", index)
}
