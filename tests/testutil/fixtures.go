package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
)

// ProductOption customizes a test product.
type ProductOption func(*contracts.ProductDTO)

// NewProduct builds a Men product with sensible defaults. Options run in order.
func NewProduct(opts ...ProductOption) *contracts.ProductDTO {
	id := uuid.New().String()
	p := &contracts.ProductDTO{
		ProductID:       id,
		Category:        domain.CategoryMen.String(),
		Subcategory:     "Topwear",
		Type:            "Shirt",
		Name:            "Test Product",
		ProductURL:      "test-product-" + id[:8],
		Price:           1000,
		DiscountedPrice: 1000,
		Discount:        "",
		Rating:          4,
		Reviews:         10,
		Colors:          "Black",
		Sizes:           "M",
		CreatedAt:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithID sets the product ID.
func WithID(id string) ProductOption {
	return func(p *contracts.ProductDTO) { p.ProductID = id }
}

// WithCategory sets the category.
func WithCategory(c domain.Category) ProductOption {
	return func(p *contracts.ProductDTO) { p.Category = c.String() }
}

// WithSubcategory sets the subcategory and type.
func WithSubcategory(sub, typ string) ProductOption {
	return func(p *contracts.ProductDTO) {
		p.Subcategory = sub
		p.Type = typ
	}
}

// WithPrice sets both list and discounted price.
func WithPrice(price, discounted float64) ProductOption {
	return func(p *contracts.ProductDTO) {
		p.Price = price
		p.DiscountedPrice = discounted
	}
}

// WithDiscount sets the discount label.
func WithDiscount(label string) ProductOption {
	return func(p *contracts.ProductDTO) { p.Discount = label }
}

// WithRating sets the rating.
func WithRating(r float64) ProductOption {
	return func(p *contracts.ProductDTO) { p.Rating = r }
}

// WithColors sets the raw colors CSV.
func WithColors(csv string) ProductOption {
	return func(p *contracts.ProductDTO) { p.Colors = csv }
}

// WithSizes sets the raw sizes CSV.
func WithSizes(csv string) ProductOption {
	return func(p *contracts.ProductDTO) { p.Sizes = csv }
}

// WithURL sets the product URL slug.
func WithURL(slug string) ProductOption {
	return func(p *contracts.ProductDTO) { p.ProductURL = slug }
}
