package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/items"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		offset, limit, err := ParsePagination(paginationContext(""))
		assert.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, defaultLimit, limit)
	})

	t.Run("ExplicitValues", func(t *testing.T) {
		offset, limit, err := ParsePagination(paginationContext("?offset=20&limit=10"))
		assert.NoError(t, err)
		assert.Equal(t, 20, offset)
		assert.Equal(t, 10, limit)
	})

	t.Run("NegativeOffset", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext("?offset=-1"))
		assert.Error(t, err)
	})

	t.Run("LimitAboveMax", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext("?limit=101"))
		assert.Error(t, err)
	})

	t.Run("NonNumeric", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext("?limit=abc"))
		assert.Error(t, err)
	})
}
