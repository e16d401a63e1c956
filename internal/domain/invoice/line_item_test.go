package invoice

import (
	"strings"
	"testing"

	ierr "github.com/billaged/billaged/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestLineItemDescriptionLength(t *testing.T) {
	t.Run("500 characters is the limit", func(t *testing.T) {
		item := newLineItem("1", "100", "0")
		item.Description = strings.Repeat("x", MaxDescriptionLength)
		assert.NoError(t, item.Validate())

		item.Description = strings.Repeat("x", MaxDescriptionLength+1)
		assert.True(t, ierr.IsValidation(item.Validate()))
	})

	t.Run("limit counts characters not bytes", func(t *testing.T) {
		// 500 two-byte runes exceed 500 bytes but not 500 characters
		item := newLineItem("1", "100", "0")
		item.Description = strings.Repeat("é", MaxDescriptionLength)
		assert.NoError(t, item.Validate())

		item.Description = strings.Repeat("é", MaxDescriptionLength+1)
		assert.True(t, ierr.IsValidation(item.Validate()))
	})
}
