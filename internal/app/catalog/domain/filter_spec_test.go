package domain

import (
	"errors"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) (*FilterSpec, error) {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return ParseFilterSpec(CategoryMen, values, DefaultLimits())
}

func requireValidationError(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.Equal(t, field, verr.Field)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParseFilterSpec_Defaults(t *testing.T) {
	spec, err := parse(t, "")
	require.NoError(t, err)

	assert.Equal(t, CategoryMen, spec.Category())
	assert.Equal(t, 1, spec.Page())
	assert.Equal(t, 12, spec.Limit())
	assert.Equal(t, int64(0), spec.Offset())
	assert.Equal(t, SortNone, spec.SortBy())
	assert.Empty(t, spec.Subcategories())
	assert.Empty(t, spec.Colors())

	_, ok := spec.MinPrice()
	assert.False(t, ok)
	_, ok = spec.MaxPrice()
	assert.False(t, ok)
	_, ok = spec.MinRating()
	assert.False(t, ok)
}

func TestParseFilterSpec_FullRequest(t *testing.T) {
	spec, err := parse(t, "page=3&limit=20&subcategory=Topwear,Bottomwear&type=Shirt"+
		"&colors=Red,%20Blue&sizes=M&minPrice=1000&maxPrice=2000&minRating=4&sortBy=price_low")
	require.NoError(t, err)

	assert.Equal(t, 3, spec.Page())
	assert.Equal(t, 20, spec.Limit())
	assert.Equal(t, int64(40), spec.Offset())
	assert.Equal(t, []string{"Topwear", "Bottomwear"}, spec.Subcategories())
	assert.Equal(t, []string{"Shirt"}, spec.Types())
	assert.Equal(t, []string{"Red", "Blue"}, spec.Colors())
	assert.Equal(t, []string{"M"}, spec.Sizes())
	assert.Equal(t, SortPriceLow, spec.SortBy())

	v, ok := spec.MinPrice()
	assert.True(t, ok)
	assert.Equal(t, 1000.0, v)
	v, ok = spec.MaxPrice()
	assert.True(t, ok)
	assert.Equal(t, 2000.0, v)
	v, ok = spec.MinRating()
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)
}

func TestParseFilterSpec_SetNormalization(t *testing.T) {
	t.Run("repeated keys are joined", func(t *testing.T) {
		spec, err := parse(t, "type=Shirt&type=Jeans,Shirt")
		require.NoError(t, err)
		assert.Equal(t, []string{"Shirt", "Jeans"}, spec.Types())
	})

	t.Run("empty entries are dropped", func(t *testing.T) {
		spec, err := parse(t, "subcategory=,Topwear,,%20,")
		require.NoError(t, err)
		assert.Equal(t, []string{"Topwear"}, spec.Subcategories())
	})

	t.Run("colors dedupe case-insensitively keeping first", func(t *testing.T) {
		spec, err := parse(t, "colors=Red,red,RED,Blue")
		require.NoError(t, err)
		assert.Equal(t, []string{"Red", "Blue"}, spec.Colors())
	})

	t.Run("types dedupe case-sensitively", func(t *testing.T) {
		spec, err := parse(t, "type=Shirt,shirt")
		require.NoError(t, err)
		assert.Equal(t, []string{"Shirt", "shirt"}, spec.Types())
	})
}

func TestParseFilterSpec_PageAndLimit(t *testing.T) {
	t.Run("page below one defaults to one", func(t *testing.T) {
		spec, err := parse(t, "page=0")
		require.NoError(t, err)
		assert.Equal(t, 1, spec.Page())

		spec, err = parse(t, "page=-4")
		require.NoError(t, err)
		assert.Equal(t, 1, spec.Page())
	})

	t.Run("non-positive limit defaults", func(t *testing.T) {
		spec, err := parse(t, "limit=0")
		require.NoError(t, err)
		assert.Equal(t, 12, spec.Limit())
	})

	t.Run("limit above max rejected", func(t *testing.T) {
		_, err := parse(t, "limit=101")
		requireValidationError(t, err, ParamLimit)
	})

	t.Run("limit at max accepted", func(t *testing.T) {
		spec, err := parse(t, "limit=100")
		require.NoError(t, err)
		assert.Equal(t, 100, spec.Limit())
	})

	t.Run("malformed page rejected", func(t *testing.T) {
		_, err := parse(t, "page=two")
		requireValidationError(t, err, ParamPage)
	})

	t.Run("malformed limit rejected", func(t *testing.T) {
		_, err := parse(t, "limit=1.5")
		requireValidationError(t, err, ParamLimit)
	})
}

func TestParseFilterSpec_NumericValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"malformed minPrice", "minPrice=abc", ParamMinPrice},
		{"malformed maxPrice", "maxPrice=12abc", ParamMaxPrice},
		{"malformed minRating", "minRating=four", ParamMinRating},
		{"NaN minPrice", "minPrice=NaN", ParamMinPrice},
		{"infinite maxPrice", "maxPrice=Inf", ParamMaxPrice},
		{"negative minPrice", "minPrice=-1", ParamMinPrice},
		{"negative minRating", "minRating=-0.5", ParamMinRating},
		{"inverted price range", "minPrice=200&maxPrice=100", ParamMinPrice},
		{"unknown sort", "sortBy=newest", ParamSortBy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := parse(t, tt.query)
			assert.Nil(t, spec)
			requireValidationError(t, err, tt.field)
		})
	}
}

func TestParseFilterSpec_TooManyValues(t *testing.T) {
	values := url.Values{}
	for i := 0; i < 33; i++ {
		values.Add(ParamSizes, string(rune('A'+i%26))+string(rune('a'+i/26)))
	}

	_, err := ParseFilterSpec(CategoryWomen, values, DefaultLimits())
	requireValidationError(t, err, ParamSizes)
}

func TestNewFilterSpec(t *testing.T) {
	t.Run("unknown category", func(t *testing.T) {
		_, err := NewFilterSpec(Category("Pets"), FilterParams{}, DefaultLimits())
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("bounds are copied", func(t *testing.T) {
		lower := 10.0
		spec, err := NewFilterSpec(CategoryKids, FilterParams{MinPrice: &lower}, DefaultLimits())
		require.NoError(t, err)
		lower = 99

		v, _ := spec.MinPrice()
		assert.Equal(t, 10.0, v)
	})

	t.Run("accessors return copies", func(t *testing.T) {
		spec, err := NewFilterSpec(CategoryKids, FilterParams{Colors: []string{"Red"}}, DefaultLimits())
		require.NoError(t, err)

		colors := spec.Colors()
		colors[0] = "Green"
		assert.Equal(t, []string{"Red"}, spec.Colors())
	})

	t.Run("infinite rating", func(t *testing.T) {
		inf := math.Inf(1)
		_, err := NewFilterSpec(CategoryKids, FilterParams{MinRating: &inf}, DefaultLimits())
		requireValidationError(t, err, ParamMinRating)
	})
}

func TestParseCategory_Known(t *testing.T) {
	c, err := ParseCategory("men")
	require.NoError(t, err)
	assert.Equal(t, CategoryMen, c)

	c, err = ParseCategory("Women")
	require.NoError(t, err)
	assert.Equal(t, CategoryWomen, c)
	assert.Equal(t, "women", c.Slug())

	_, err = ParseCategory("unisex")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	assert.Len(t, Categories(), 3)
}

func TestFilterSpec_OffsetSaturates(t *testing.T) {
	t.Run("huge page", func(t *testing.T) {
		spec, err := parse(t, "limit=100&page=100000000000000000")
		require.NoError(t, err)
		assert.Equal(t, 100000000000000000, spec.Page())
		assert.Equal(t, int64(math.MaxInt64), spec.Offset())
	})

	t.Run("largest addressable page", func(t *testing.T) {
		spec, err := NewFilterSpec(CategoryMen, FilterParams{Page: math.MaxInt64/100 + 1, Limit: 100}, DefaultLimits())
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64/100)*100, spec.Offset())
		assert.Positive(t, spec.Offset())
	})
}
