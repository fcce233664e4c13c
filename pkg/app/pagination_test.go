package app

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestGetPage(t *testing.T) {
	cases := []struct {
		target string
		want   int
	}{
		{"/api/links", 1},
		{"/api/links?page=3", 3},
		{"/api/links?page=0", 1},
		{"/api/links?page=-2", 1},
		{"/api/links?page=abc", 1},
	}
	for _, tc := range cases {
		if got := GetPage(testContext(t, tc.target)); got != tc.want {
			t.Errorf("GetPage(%q) = %d, want %d", tc.target, got, tc.want)
		}
	}
}

func TestGetPageSizeWithConfig(t *testing.T) {
	cfg := PaginationConfig{DefaultPageSize: 10, MaxPageSize: 100}

	cases := []struct {
		target string
		want   int
	}{
		{"/api/links", 10},
		{"/api/links?pageSize=25", 25},
		{"/api/links?pageSize=0", 10},
		{"/api/links?pageSize=500", 100},
	}
	for _, tc := range cases {
		if got := GetPageSizeWithConfig(testContext(t, tc.target), cfg); got != tc.want {
			t.Errorf("GetPageSizeWithConfig(%q) = %d, want %d", tc.target, got, tc.want)
		}
	}
}

func TestGetPageOffset(t *testing.T) {
	if got := GetPageOffset(1, 10); got != 0 {
		t.Errorf("GetPageOffset(1, 10) = %d, want 0", got)
	}
	if got := GetPageOffset(3, 20); got != 40 {
		t.Errorf("GetPageOffset(3, 20) = %d, want 40", got)
	}
}

func TestNewPagerReflectsQuery(t *testing.T) {
	c := testContext(t, "/api/links?page=2&pageSize=5")
	p := NewPager(c, 12)
	if p.Page != 2 || p.PageSize != 5 || p.TotalRows != 12 {
		t.Errorf("pager = %+v, want page 2 size 5 total 12", p)
	}
}
