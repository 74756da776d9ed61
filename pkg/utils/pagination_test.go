package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestPageParam(t *testing.T) {
	e := echo.New()
	for query, want := range map[string]int{"": 1, "page=3": 3, "page=0": 1, "page=-2": 1, "page=x": 1} {
		req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Equal(t, want, PageParam(c), query)
	}
}

func TestTotalPagesAndClamp(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(15, 12))

	assert.Equal(t, 1, ClampPage(5, 0))
	assert.Equal(t, 2, ClampPage(5, 2))
	assert.Equal(t, 1, ClampPage(-1, 2))
}
