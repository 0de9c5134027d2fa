package contracts

import (
	"context"
	"encoding/json"
	"time"

	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// ProductDTO is a data transfer object for catalog queries.
// Image bytes are never loaded by listing reads; HasImage reports whether the
// product has one.
type ProductDTO struct {
	ProductID       string          `json:"product_id"`
	Category        string          `json:"category"`
	Subcategory     string          `json:"subcategory"`
	Type            string          `json:"type"`
	Name            string          `json:"product_name"`
	ProductURL      string          `json:"product_url"`
	Price           float64         `json:"price"`
	DiscountedPrice float64         `json:"discounted_price"`
	Discount        string          `json:"discount"`
	Rating          float64         `json:"rating"`
	Reviews         int64           `json:"reviews"`
	Colors          string          `json:"colors"`
	Sizes           string          `json:"sizes"`
	ImageMIME       string          `json:"image_mime,omitempty"`
	HasImage        bool            `json:"has_image"`
	Details         json.RawMessage `json:"details,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// FacetOptions lists the distinct filter values available in a category.
type FacetOptions struct {
	Subcategories []string `json:"subcategory"`
	Types         []string `json:"types"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
}

// SearchRequest is one listing read: a predicate, an ordering and a page window.
// The predicate is shared by the count and the page read. A zero Limit reads
// every matching row. SkipCount omits the count read; Total is then the page size.
type SearchRequest struct {
	Predicate *query.Predicate
	Ordering  query.Ordering
	Limit     int64
	Offset    int64
	SkipCount bool
}

// SearchResult is the outcome of a listing read.
type SearchResult struct {
	Products []*ProductDTO
	Total    int64
}

// FacetRow is the projection of one product read for facet extraction.
type FacetRow struct {
	Subcategory string
	Type        string
	Colors      string
	Sizes       string
}

// ReadModel defines the interface for catalog queries.
// Implementations run the count and page reads of Search against one
// consistent snapshot and fail both or neither.
type ReadModel interface {
	// Search returns the matching page and the total row count.
	Search(ctx context.Context, req *SearchRequest) (*SearchResult, error)

	// FacetRows streams the facet projection of every product in category.
	FacetRows(ctx context.Context, category string, fn func(FacetRow)) error

	// GetByURL returns the product with the given URL slug in category.
	GetByURL(ctx context.Context, category, productURL string) (*ProductDTO, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
