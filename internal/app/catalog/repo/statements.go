package repo

import (
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// searchStatements renders the count and page statements of a listing from
// one builder, so both bind the same predicate instance. The page statement
// only adds the ordering and the trailing LIMIT and OFFSET parameters.
func searchStatements(req *contracts.SearchRequest, d query.Dialect) (count, page query.Statement) {
	base := query.From(m_product.TableName).
		Select(m_product.ListColumns()...).
		Where(req.Predicate)

	pageBuilder := base.OrderBy(req.Ordering...)
	if req.Limit > 0 {
		pageBuilder = pageBuilder.Page(req.Limit, req.Offset)
	}

	return base.Count().Build(d), pageBuilder.Build(d)
}

func facetStatement(category string, d query.Dialect) query.Statement {
	return query.From(m_product.TableName).
		Select(m_product.FacetColumns()...).
		Where(query.NewPredicate(query.Eq(m_product.Category, category))).
		Build(d)
}

func detailStatement(category, productURL string, d query.Dialect) query.Statement {
	return query.From(m_product.TableName).
		Select(m_product.ListColumns()...).
		Where(query.NewPredicate(
			query.Eq(m_product.Category, category),
			query.Eq(m_product.ProductURL, productURL),
		)).
		Page(1, 0).
		Build(d)
}
