package domain

import (
	"sort"
	"strings"
)

// FacetCollector accumulates the distinct filter options of one category.
// Colors and sizes are comma-separated lists with free spacing; every token
// is trimmed and empty tokens are dropped.
type FacetCollector struct {
	subcategories map[string]struct{}
	types         map[string]struct{}
	colors        map[string]struct{}
	sizes         map[string]struct{}
}

// NewFacetCollector creates an empty collector.
func NewFacetCollector() *FacetCollector {
	return &FacetCollector{
		subcategories: make(map[string]struct{}),
		types:         make(map[string]struct{}),
		colors:        make(map[string]struct{}),
		sizes:         make(map[string]struct{}),
	}
}

// Add records one product row.
func (c *FacetCollector) Add(subcategory, productType, colors, sizes string) {
	addToken(c.subcategories, subcategory)
	addToken(c.types, productType)
	for _, tok := range SplitCSV(colors) {
		c.colors[tok] = struct{}{}
	}
	for _, tok := range SplitCSV(sizes) {
		c.sizes[tok] = struct{}{}
	}
}

// Subcategories returns the sorted distinct subcategories.
func (c *FacetCollector) Subcategories() []string { return sortedKeys(c.subcategories) }

// Types returns the sorted distinct types.
func (c *FacetCollector) Types() []string { return sortedKeys(c.types) }

// Colors returns the sorted distinct color tokens.
func (c *FacetCollector) Colors() []string { return sortedKeys(c.colors) }

// Sizes returns the sorted distinct size tokens.
func (c *FacetCollector) Sizes() []string { return sortedKeys(c.sizes) }

// SplitCSV splits a stored comma-separated field into trimmed, non-empty tokens.
func SplitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func addToken(set map[string]struct{}, v string) {
	if v = strings.TrimSpace(v); v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
