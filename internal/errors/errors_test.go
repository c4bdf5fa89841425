package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("WrapNilReturnsNil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("WrapPreservesChain", func(t *testing.T) {
		err := Wrap(ErrNotFound, "user lookup")
		assert.True(t, Is(err, ErrNotFound))
		assert.Equal(t, "user lookup: not found", err.Error())
	})

	t.Run("DoubleWrapPreservesChain", func(t *testing.T) {
		err := Wrap(Wrap(ErrForbidden, "inner"), "outer")
		assert.True(t, Is(err, ErrForbidden))
	})
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrConflict,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrForbidden,
		ErrTooManyRequests,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "sentinel %v should not match %v", a, b)
		}
	}
}
