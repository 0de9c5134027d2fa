package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("products").
		Select("product_id", "product_name", "category").
		Build(Spanner)

	assert.Equal(t, "SELECT product_id, product_name, category FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("products").Build(Spanner)

	assert.Equal(t, "SELECT * FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SingleWhereCondition(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		Where(NewPredicate(Eq("category", "Men"))).
		Build(Spanner)

	assert.Equal(t, "SELECT product_id FROM products WHERE category = @p0", stmt.SQL)
	assert.Equal(t, []interface{}{"Men"}, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	pred := NewPredicate(
		Eq("category", "Men"),
		In("type", []string{"Shirt", "Jeans"}),
		Gte("price", 100),
	)
	stmt := From("products").Select("product_id").Where(pred).Build(Spanner)

	assert.Equal(t,
		"SELECT product_id FROM products WHERE category = @p0 AND type IN UNNEST(@p1) AND price >= @p2",
		stmt.SQL)
	assert.Equal(t, []interface{}{"Men", []string{"Shirt", "Jeans"}, float64(100)}, stmt.Params)
}

func TestBuilder_OrderBy(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		OrderBy(By("price", Desc), By("product_id", Asc)).
		Build(Spanner)

	assert.Equal(t, "SELECT product_id FROM products ORDER BY price DESC, product_id ASC", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_PageParamsTrailPredicate(t *testing.T) {
	pred := NewPredicate(Eq("category", "Women"), ContainsAny("colors", "Red", "Blue"))
	stmt := From("products").
		Select("product_id").
		Where(pred).
		OrderBy(By("product_id", Asc)).
		Page(12, 24).
		Build(Spanner)

	assert.Equal(t,
		"SELECT product_id FROM products WHERE category = @p0 AND "+
			"(LOWER(colors) LIKE @p1 OR LOWER(colors) LIKE @p2) "+
			"ORDER BY product_id ASC LIMIT @p3 OFFSET @p4",
		stmt.SQL)
	require.Len(t, stmt.Params, 5)
	assert.Equal(t, int64(12), stmt.Params[3])
	assert.Equal(t, int64(24), stmt.Params[4])
}

func TestBuilder_PostgresPlaceholders(t *testing.T) {
	pred := NewPredicate(Eq("category", "Kids"), In("subcategory", []string{"Boys"}))
	stmt := From("products").
		Select("product_id").
		Where(pred).
		Page(5, 0).
		Build(Postgres)

	assert.Equal(t,
		"SELECT product_id FROM products WHERE category = $1 AND subcategory = ANY($2) LIMIT $3 OFFSET $4",
		stmt.SQL)
	assert.Len(t, stmt.Params, 4)
}

func TestBuilder_Count(t *testing.T) {
	pred := NewPredicate(Eq("category", "Men"), Lte("price", 500))
	base := From("products").
		Select("product_id", "product_name").
		Where(pred).
		OrderBy(By("price", Asc)).
		Page(10, 20)

	countStmt := base.Count().Build(Spanner)

	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE category = @p0 AND price <= @p1", countStmt.SQL)
	assert.Equal(t, []interface{}{"Men", float64(500)}, countStmt.Params)
}

func TestBuilder_CountSharesPredicate(t *testing.T) {
	pred := NewPredicate(Eq("category", "Men"))
	base := From("products").Select("product_id").Where(pred).Page(12, 0)

	assert.Same(t, pred, base.Predicate())
	assert.Same(t, base.Predicate(), base.Count().Predicate())

	page := base.Build(Spanner)
	count := base.Count().Build(Spanner)
	n := pred.ParamCount()
	assert.Equal(t, count.Params, page.Params[:n])
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("products").Select("product_id")

	withOrder := base.OrderBy(By("price", Asc))
	withPage := base.Page(10, 0)

	assert.Equal(t, "SELECT product_id FROM products", base.Build(Spanner).SQL)
	assert.Equal(t, "SELECT product_id FROM products ORDER BY price ASC", withOrder.Build(Spanner).SQL)
	assert.Equal(t, "SELECT product_id FROM products LIMIT @p0 OFFSET @p1", withPage.Build(Spanner).SQL)
}

func TestBuilder_NilPredicate(t *testing.T) {
	stmt := From("products").Where(nil).Build(Spanner)
	assert.Equal(t, "SELECT * FROM products", stmt.SQL)
}

func TestStatement_Spanner(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		Where(NewPredicate(Eq("category", "Men"))).
		Page(3, 6).
		Build(Spanner).
		Spanner()

	assert.Equal(t, "SELECT product_id FROM products WHERE category = @p0 LIMIT @p1 OFFSET @p2", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "Men",
		"p1": int64(3),
		"p2": int64(6),
	}, stmt.Params)
}

func TestBuilder_String(t *testing.T) {
	b := From("products").Select("product_id").Where(NewPredicate(Eq("category", "Men")))

	str := b.String()
	assert.Contains(t, str, "SELECT product_id FROM products WHERE category = @p0")
	assert.Contains(t, str, "Men")
}
