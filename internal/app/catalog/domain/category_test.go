package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Women ")
	require.NoError(t, err)
	assert.Equal(t, CategoryWomen, c)
	assert.Equal(t, "women", c.Slug())

	_, err = ParseCategory("pets")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestValidateProductURL(t *testing.T) {
	assert.NoError(t, ValidateProductURL("men-red-shirt-1"))

	t.Run("blank", func(t *testing.T) {
		requireValidationError(t, ValidateProductURL("  "), ParamProductURL)
	})

	t.Run("shadowed by static routes", func(t *testing.T) {
		requireValidationError(t, ValidateProductURL("filters"), ParamProductURL)
		requireValidationError(t, ValidateProductURL("Featured"), ParamProductURL)
	})
}
