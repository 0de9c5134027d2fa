package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting or replacing a product.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			ProductID,
			Category,
			Subcategory,
			Type,
			Name,
			ProductURL,
			Price,
			DiscountedPrice,
			Discount,
			Rating,
			Reviews,
			Colors,
			Sizes,
			Image,
			ImageMIME,
			Details,
			CreatedAt,
		},
		[]interface{}{
			data.ProductID,
			data.Category,
			data.Subcategory,
			data.Type,
			data.Name,
			data.ProductURL,
			data.Price,
			data.DiscountedPrice,
			data.Discount,
			data.Rating,
			data.Reviews,
			data.Colors,
			data.Sizes,
			data.Image,
			data.ImageMIME,
			data.Details,
			spanner.CommitTimestamp,
		},
	)
}
