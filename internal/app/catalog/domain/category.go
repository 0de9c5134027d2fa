package domain

import "strings"

// Category is a top-level storefront department as stored in the products table.
type Category string

const (
	CategoryMen   Category = "Men"
	CategoryWomen Category = "Women"
	CategoryKids  Category = "Kids"
)

var categoriesBySlug = map[string]Category{
	"men":   CategoryMen,
	"women": CategoryWomen,
	"kids":  CategoryKids,
}

// ParseCategory resolves a URL slug ("men", "Women") to a Category.
func ParseCategory(slug string) (Category, error) {
	c, ok := categoriesBySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// Slug returns the lowercase URL form of the category.
func (c Category) Slug() string {
	return strings.ToLower(string(c))
}

func (c Category) String() string {
	return string(c)
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryMen, CategoryWomen, CategoryKids}
}

// ParamProductURL names the product slug path parameter.
const ParamProductURL = "productURL"

// reservedSlugs are path segments routed before product detail under /api/{category}.
var reservedSlugs = map[string]struct{}{
	"filters":  {},
	"featured": {},
}

// ValidateProductURL rejects blank slugs and slugs shadowed by the facet and
// featured routes.
func ValidateProductURL(slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return newValidationError(ParamProductURL, "is required")
	}
	if _, reserved := reservedSlugs[strings.ToLower(slug)]; reserved {
		return newValidationError(ParamProductURL, "%q is a reserved path", slug)
	}
	return nil
}
