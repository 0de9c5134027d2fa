package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
type Data struct {
	ProductID       string             `spanner:"product_id"`
	Category        string             `spanner:"category"`
	Subcategory     spanner.NullString `spanner:"subcategory"`
	Type            spanner.NullString `spanner:"type"`
	Name            string             `spanner:"product_name"`
	ProductURL      string             `spanner:"product_url"`
	Price           float64            `spanner:"price"`
	DiscountedPrice float64            `spanner:"discounted_price"`
	Discount        spanner.NullString `spanner:"discount"`
	Rating          float64            `spanner:"rating"`
	Reviews         int64              `spanner:"reviews"`
	Colors          spanner.NullString `spanner:"colors"`
	Sizes           spanner.NullString `spanner:"sizes"`
	Image           []byte             `spanner:"image"`
	ImageMIME       spanner.NullString `spanner:"image_mime"`
	HasImage        bool               `spanner:"has_image"`
	Details         spanner.NullJSON   `spanner:"details"`
	CreatedAt       time.Time          `spanner:"created_at"`
}

// FacetData is the facet projection of a product row.
type FacetData struct {
	Subcategory spanner.NullString `spanner:"subcategory"`
	Type        spanner.NullString `spanner:"type"`
	Colors      spanner.NullString `spanner:"colors"`
	Sizes       spanner.NullString `spanner:"sizes"`
}
