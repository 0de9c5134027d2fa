package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Statement is a rendered SQL statement with positional parameters.
type Statement struct {
	SQL    string
	Params []interface{}
}

// Spanner converts the statement to a spanner.Statement, naming each
// positional parameter the way the Spanner dialect references it (p0, p1, ...).
func (s Statement) Spanner() spanner.Statement {
	params := make(map[string]interface{}, len(s.Params))
	for i, v := range s.Params {
		params[SpannerParamName(i)] = v
	}
	return spanner.Statement{SQL: s.SQL, Params: params}
}

// Builder constructs SQL SELECT queries.
// It provides a fluent API for building queries with a WHERE predicate,
// ORDER BY, LIMIT, and OFFSET. Parameter positions are assigned while
// rendering, so fragments and parameters cannot get out of sync.
type Builder struct {
	table      string
	selectCols []string
	where      *Predicate
	orderBy    Ordering
	limitVal   int64
	offsetVal  int64
	paged      bool
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{
		table:      table,
		selectCols: []string{},
	}
}

// Select specifies the columns to retrieve.
// Call this method to avoid duplicating column lists.
func (b *Builder) Select(columns ...string) *Builder {
	newBuilder := b.clone()
	newBuilder.selectCols = append(newBuilder.selectCols, columns...)
	return newBuilder
}

// Where sets the WHERE predicate. The predicate is shared, not copied.
func (b *Builder) Where(p *Predicate) *Builder {
	newBuilder := b.clone()
	newBuilder.where = p
	return newBuilder
}

// OrderBy specifies the sort keys, most significant first.
func (b *Builder) OrderBy(terms ...OrderTerm) *Builder {
	newBuilder := b.clone()
	newBuilder.orderBy = append(Ordering{}, terms...)
	return newBuilder
}

// Page sets LIMIT and OFFSET. Both are bound as the two trailing parameters.
func (b *Builder) Page(limit, offset int64) *Builder {
	newBuilder := b.clone()
	newBuilder.limitVal = limit
	newBuilder.offsetVal = offset
	newBuilder.paged = true
	return newBuilder
}

// Count returns a new builder that generates a COUNT(*) query
// with the same FROM and the same WHERE predicate instance.
// This eliminates duplication when you need both result rows and total count.
func (b *Builder) Count() *Builder {
	newBuilder := b.clone()
	newBuilder.selectCols = []string{"COUNT(*)"}
	// Clear pagination for count query
	newBuilder.limitVal = 0
	newBuilder.offsetVal = 0
	newBuilder.paged = false
	newBuilder.orderBy = nil
	return newBuilder
}

// Predicate returns the WHERE predicate.
func (b *Builder) Predicate() *Predicate {
	return b.where
}

// Build constructs the final statement for the dialect.
func (b *Builder) Build(d Dialect) Statement {
	var sql strings.Builder
	var params []interface{}

	// SELECT clause
	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	// FROM clause
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	// WHERE clause
	if b.where.Len() > 0 {
		fragment, whereParams := b.where.SQL(d, 0)
		sql.WriteString(" WHERE ")
		sql.WriteString(fragment)
		params = append(params, whereParams...)
	}

	// ORDER BY clause
	if len(b.orderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(b.orderBy.SQL(d))
	}

	// LIMIT / OFFSET clause
	if b.paged {
		sql.WriteString(" LIMIT ")
		sql.WriteString(d.Placeholder(len(params)))
		params = append(params, b.limitVal)
		sql.WriteString(" OFFSET ")
		sql.WriteString(d.Placeholder(len(params)))
		params = append(params, b.offsetVal)
	}

	return Statement{
		SQL:    sql.String(),
		Params: params,
	}
}

// clone creates a shallow copy of the builder for immutability.
func (b *Builder) clone() *Builder {
	newBuilder := &Builder{
		table:      b.table,
		selectCols: make([]string, len(b.selectCols)),
		where:      b.where,
		orderBy:    make(Ordering, len(b.orderBy)),
		limitVal:   b.limitVal,
		offsetVal:  b.offsetVal,
		paged:      b.paged,
	}
	copy(newBuilder.selectCols, b.selectCols)
	copy(newBuilder.orderBy, b.orderBy)
	return newBuilder
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build(Spanner)
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
