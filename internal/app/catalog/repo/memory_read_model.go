package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

const backendMemory = "memory"

// MemoryReadModel implements ReadModel over an in-process product list.
// It evaluates the same predicates and orderings the SQL read models render,
// including substring matching on colors and sizes.
type MemoryReadModel struct {
	mu       sync.RWMutex
	products []*contracts.ProductDTO
}

// NewMemoryReadModel creates a memory read model holding copies of products.
func NewMemoryReadModel(products ...*contracts.ProductDTO) *MemoryReadModel {
	rm := &MemoryReadModel{}
	rm.Add(products...)
	return rm
}

// LoadFixture reads a JSON array of products.
func LoadFixture(path string) ([]*contracts.ProductDTO, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	var products []*contracts.ProductDTO
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return products, nil
}

// WriteFixture writes products as an indented JSON array.
func WriteFixture(path string, products []*contracts.ProductDTO) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode fixture: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create fixture dir: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o600); err != nil {
		return fmt.Errorf("failed to write fixture %s: %w", path, err)
	}
	return nil
}

// Add stores copies of products, replacing any with the same ProductID.
func (rm *MemoryReadModel) Add(products ...*contracts.ProductDTO) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	for _, p := range products {
		cp := *p
		replaced := false
		for i, existing := range rm.products {
			if existing.ProductID == cp.ProductID {
				rm.products[i] = &cp
				replaced = true
				break
			}
		}
		if !replaced {
			rm.products = append(rm.products, &cp)
		}
	}
}

// Snapshot returns copies of every stored product in insertion order.
func (rm *MemoryReadModel) Snapshot() []*contracts.ProductDTO {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	out := make([]*contracts.ProductDTO, len(rm.products))
	for i, p := range rm.products {
		cp := *p
		out[i] = &cp
	}
	return out
}

// Search filters, sorts and pages the stored products.
func (rm *MemoryReadModel) Search(ctx context.Context, req *contracts.SearchRequest) (*contracts.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, queryError(ctx, backendMemory, "search", "", err)
	}

	matched, err := rm.filter(req.Predicate)
	if err != nil {
		return nil, queryError(ctx, backendMemory, "search", "", err)
	}

	var sortErr error
	sort.SliceStable(matched, func(i, j int) bool {
		less, err := lessByOrdering(matched[i], matched[j], req.Ordering)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return less
	})
	if sortErr != nil {
		return nil, queryError(ctx, backendMemory, "page", "", sortErr)
	}

	total := int64(len(matched))
	page, err := window(matched, req.Limit, req.Offset)
	if err != nil {
		return nil, queryError(ctx, backendMemory, "page", "", err)
	}
	if req.SkipCount {
		total = int64(len(page))
	}
	return &contracts.SearchResult{Products: page, Total: total}, nil
}

// FacetRows calls fn for every product in category.
func (rm *MemoryReadModel) FacetRows(ctx context.Context, category string, fn func(contracts.FacetRow)) error {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	for _, p := range rm.products {
		if err := ctx.Err(); err != nil {
			return queryError(ctx, backendMemory, "facets", "", err)
		}
		if p.Category != category {
			continue
		}
		fn(contracts.FacetRow{
			Subcategory: p.Subcategory,
			Type:        p.Type,
			Colors:      p.Colors,
			Sizes:       p.Sizes,
		})
	}
	return nil
}

// GetByURL retrieves a product by URL slug.
func (rm *MemoryReadModel) GetByURL(ctx context.Context, category, productURL string) (*contracts.ProductDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, queryError(ctx, backendMemory, "get_by_url", "", err)
	}

	rm.mu.RLock()
	defer rm.mu.RUnlock()

	for _, p := range rm.products {
		if p.Category == category && p.ProductURL == productURL {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// Ping always succeeds.
func (rm *MemoryReadModel) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (rm *MemoryReadModel) filter(pred *query.Predicate) ([]*contracts.ProductDTO, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	conds := pred.Conditions()
	out := make([]*contracts.ProductDTO, 0, len(rm.products))
	for _, p := range rm.products {
		ok, err := matchesAll(p, conds)
		if err != nil {
			return nil, err
		}
		if ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func window(products []*contracts.ProductDTO, limit, offset int64) ([]*contracts.ProductDTO, error) {
	if offset < 0 {
		return nil, fmt.Errorf("negative offset %d", offset)
	}
	n := int64(len(products))
	if offset >= n {
		return []*contracts.ProductDTO{}, nil
	}
	end := n
	if limit > 0 && limit < n-offset {
		end = offset + limit
	}
	return products[offset:end], nil
}

func matchesAll(p *contracts.ProductDTO, conds []query.Condition) (bool, error) {
	for _, c := range conds {
		ok, err := matches(p, c)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matches(p *contracts.ProductDTO, c query.Condition) (bool, error) {
	switch c.Kind() {
	case query.KindEq:
		if want, ok := c.Value().(string); ok {
			got, err := textColumn(p, c.Field())
			return got == want, err
		}
		want, ok := toFloat(c.Value())
		if !ok {
			return false, fmt.Errorf("unsupported equality value %T", c.Value())
		}
		got, err := numericColumn(p, c.Field())
		return got == want, err

	case query.KindInSet:
		set, ok := c.Value().([]string)
		if !ok {
			return false, fmt.Errorf("unsupported set value %T", c.Value())
		}
		got, err := textColumn(p, c.Field())
		if err != nil {
			return false, err
		}
		for _, v := range set {
			if v == got {
				return true, nil
			}
		}
		return false, nil

	case query.KindCompare:
		got, err := numericColumn(p, c.Field())
		if err != nil {
			return false, err
		}
		return compare(got, c.Op(), c.Value())

	case query.KindPercentCompare:
		text, err := textColumn(p, c.Field())
		if err != nil {
			return false, err
		}
		got, ok := domain.ParseDiscountPercent(text)
		if !ok {
			return false, nil
		}
		return compare(got, c.Op(), c.Value())

	case query.KindContainsAny:
		text, err := textColumn(p, c.Field())
		if err != nil {
			return false, err
		}
		text = strings.ToLower(text)
		for _, tok := range c.Tokens() {
			if strings.Contains(text, tok) {
				return true, nil
			}
		}
		return false, nil

	case query.KindIsNull, query.KindIsNotNull:
		text, err := textColumn(p, c.Field())
		if err != nil {
			return false, err
		}
		return (text == "") == (c.Kind() == query.KindIsNull), nil

	default:
		return false, fmt.Errorf("unsupported condition kind %s", c.Kind())
	}
}

func compare(got float64, op query.Op, value interface{}) (bool, error) {
	want, ok := toFloat(value)
	if !ok {
		return false, fmt.Errorf("unsupported comparison value %T", value)
	}
	if op == query.OpLte {
		return got <= want, nil
	}
	return got >= want, nil
}

// lessByOrdering reports whether a sorts before b. NullsLast terms place
// missing values after present ones in either direction.
func lessByOrdering(a, b *contracts.ProductDTO, ordering query.Ordering) (bool, error) {
	for _, term := range ordering {
		cmp, err := compareTerm(a, b, term)
		if err != nil {
			return false, err
		}
		if cmp != 0 {
			return cmp < 0, nil
		}
	}
	return false, nil
}

func compareTerm(a, b *contracts.ProductDTO, term query.OrderTerm) (int, error) {
	if term.Percent {
		at, err := textColumn(a, term.Field)
		if err != nil {
			return 0, err
		}
		bt, _ := textColumn(b, term.Field)
		av, aok := domain.ParseDiscountPercent(at)
		bv, bok := domain.ParseDiscountPercent(bt)
		switch {
		case !aok && !bok:
			return 0, nil
		case !aok:
			return 1, nil
		case !bok:
			return -1, nil
		}
		return directed(cmpFloat(av, bv), term.Dir), nil
	}

	if isNumericColumn(term.Field) {
		av, err := numericColumn(a, term.Field)
		if err != nil {
			return 0, err
		}
		bv, _ := numericColumn(b, term.Field)
		return directed(cmpFloat(av, bv), term.Dir), nil
	}

	at, err := textColumn(a, term.Field)
	if err != nil {
		return 0, err
	}
	bt, _ := textColumn(b, term.Field)
	return directed(strings.Compare(at, bt), term.Dir), nil
}

func directed(cmp int, dir query.Direction) int {
	if dir == query.Desc {
		return -cmp
	}
	return cmp
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func isNumericColumn(field string) bool {
	switch field {
	case m_product.Price, m_product.DiscountedPrice, m_product.Rating, m_product.Reviews:
		return true
	default:
		return false
	}
}

func numericColumn(p *contracts.ProductDTO, field string) (float64, error) {
	switch field {
	case m_product.Price:
		return p.Price, nil
	case m_product.DiscountedPrice:
		return p.DiscountedPrice, nil
	case m_product.Rating:
		return p.Rating, nil
	case m_product.Reviews:
		return float64(p.Reviews), nil
	default:
		return 0, fmt.Errorf("unknown numeric column %q", field)
	}
}

func textColumn(p *contracts.ProductDTO, field string) (string, error) {
	switch field {
	case m_product.ProductID:
		return p.ProductID, nil
	case m_product.Category:
		return p.Category, nil
	case m_product.Subcategory:
		return p.Subcategory, nil
	case m_product.Type:
		return p.Type, nil
	case m_product.Name:
		return p.Name, nil
	case m_product.ProductURL:
		return p.ProductURL, nil
	case m_product.Discount:
		return p.Discount, nil
	case m_product.Colors:
		return p.Colors, nil
	case m_product.Sizes:
		return p.Sizes, nil
	case m_product.ImageMIME:
		return p.ImageMIME, nil
	default:
		return "", fmt.Errorf("unknown text column %q", field)
	}
}
