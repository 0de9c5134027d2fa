// Package demo generates deterministic storefront products for seeding and tests.
package demo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
)

// namespace keys generated product IDs so reseeding replaces rows instead of
// duplicating them.
var namespace = uuid.MustParse("9b7c3d52-1f0e-4c55-8a51-3f6d2b8e4a10")

var (
	subcategories = map[domain.Category][]string{
		domain.CategoryMen:   {"Topwear", "Bottomwear", "Footwear"},
		domain.CategoryWomen: {"Topwear", "Bottomwear", "Dresses"},
		domain.CategoryKids:  {"Boys", "Girls", "Infants"},
	}
	typesBySubcategory = map[string][]string{
		"Topwear":    {"Shirt", "T-Shirt", "Jacket"},
		"Bottomwear": {"Jeans", "Trousers", "Shorts"},
		"Footwear":   {"Sneakers", "Loafers"},
		"Dresses":    {"Maxi", "Midi"},
		"Boys":       {"T-Shirt", "Shorts"},
		"Girls":      {"Frock", "Leggings"},
		"Infants":    {"Romper", "Bodysuit"},
	}
	palette   = []string{"Red", "Navy Blue", "Black", "White", "Olive", "Dark Red", "Beige"}
	sizeRuns  = []string{"S, M, L", "M,L,XL", "XS ,S", "28, 30, 32", "One Size"}
	discounts = []string{"10%", "20%", "40% off", "55%", "", "70%"}
)

// Epoch is the created_at of the first generated product.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// ProductID returns the deterministic ID of the i-th product of category.
func ProductID(category domain.Category, i int) string {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("%s/%d", category, i))).String()
}

// Products returns n products of category. The same arguments always yield
// the same products.
func Products(category domain.Category, n int) []*contracts.ProductDTO {
	subs := subcategories[category]
	out := make([]*contracts.ProductDTO, 0, n)

	for i := 0; i < n; i++ {
		sub := subs[i%len(subs)]
		types := typesBySubcategory[sub]
		typ := types[(i/len(subs))%len(types)]

		price := float64(500 + (i*137)%2500)
		discount := discounts[i%len(discounts)]
		discounted := domain.DiscountedPrice(price, discount)

		colors := []string{palette[i%len(palette)]}
		if i%3 == 0 {
			colors = append(colors, palette[(i+2)%len(palette)])
		}

		name := fmt.Sprintf("%s %s %s %d", category, colors[0], typ, i+1)
		details, _ := json.Marshal(map[string]string{
			"fabric": []string{"Cotton", "Linen", "Denim", "Polyester"}[i%4],
			"fit":    []string{"Regular", "Slim", "Relaxed"}[i%3],
		})

		out = append(out, &contracts.ProductDTO{
			ProductID:       ProductID(category, i),
			Category:        category.String(),
			Subcategory:     sub,
			Type:            typ,
			Name:            name,
			ProductURL:      slugify(name),
			Price:           price,
			DiscountedPrice: discounted,
			Discount:        discount,
			Rating:          float64(20+(i*7)%31) / 10,
			Reviews:         int64((i * 53) % 900),
			Colors:          strings.Join(colors, ", "),
			Sizes:           sizeRuns[i%len(sizeRuns)],
			Details:         details,
			CreatedAt:       Epoch.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(" ", "-", "%", "").Replace(s)
	return s
}
