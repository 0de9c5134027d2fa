package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID       = "product_id"
	Category        = "category"
	Subcategory     = "subcategory"
	Type            = "type"
	Name            = "product_name"
	ProductURL      = "product_url"
	Price           = "price"
	DiscountedPrice = "discounted_price"
	Discount        = "discount"
	Rating          = "rating"
	Reviews         = "reviews"
	Colors          = "colors"
	Sizes           = "sizes"
	Image           = "image"
	ImageMIME       = "image_mime"
	Details         = "details"
	CreatedAt       = "created_at"

	// HasImage is a computed column; image bytes are never read by catalog queries.
	HasImage = "has_image"
)

// hasImageExpr projects HasImage without loading the image bytes.
const hasImageExpr = "(" + Image + " IS NOT NULL) AS " + HasImage

// ListColumns returns the projection used by listing, featured and detail reads.
func ListColumns() []string {
	return []string{
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
		ImageMIME,
		hasImageExpr,
		Details,
		CreatedAt,
	}
}

// FacetColumns returns the projection used for facet extraction.
func FacetColumns() []string {
	return []string{Subcategory, Type, Colors, Sizes}
}
