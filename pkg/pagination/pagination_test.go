package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return FromQuery(c)
}

func TestFromQueryDefaults(t *testing.T) {
	p := paramsFor(t, "")
	require.Equal(t, 1, p.Page)
	require.Equal(t, 10, p.Limit)
	require.Equal(t, 0, p.Offset())
}

func TestFromQueryFloorsInvalidValues(t *testing.T) {
	p := paramsFor(t, "page=0&limit=-5")
	require.Equal(t, 1, p.Page)
	require.Equal(t, 10, p.Limit)

	p = paramsFor(t, "page=abc&limit=xyz")
	require.Equal(t, 1, p.Page)
	require.Equal(t, 10, p.Limit)
}

func TestOffset(t *testing.T) {
	p := paramsFor(t, "page=3&limit=20")
	require.Equal(t, 40, p.Offset())
}

func TestNewPageCeilsTotalPages(t *testing.T) {
	page := NewPage(15, Params{Page: 2, Limit: 10}, []int{1, 2, 3, 4, 5})
	require.EqualValues(t, 15, page.Total)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 2, page.TotalPages)

	page = NewPage(0, Params{Page: 1, Limit: 10}, []int{})
	require.Equal(t, 0, page.TotalPages)
}
