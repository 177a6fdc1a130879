package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
)

func TestValidateRating(t *testing.T) {
	for r := MinRating; r <= MaxRating; r++ {
		assert.NoError(t, ValidateRating(r))
	}
	for _, r := range []int{0, 6, -1} {
		assert.True(t, httperr.IsBusiness(ValidateRating(r), "invalid_rating"))
	}
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(0, 0))
	assert.Equal(t, 4.0, Average(12, 3))
	assert.InDelta(t, 3.5, Average(7, 2), 1e-9)
}
