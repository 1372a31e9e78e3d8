package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAtoiOr(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"", 7, 7},
		{"12", 7, 12},
		{"abc", 7, 7},
		{"-3", 7, -3},
	}
	for _, tc := range cases {
		if got := atoiOr(tc.in, tc.def); got != tc.want {
			t.Errorf("atoiOr(%q,%d) = %d, mau %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 20},
		{"page=3&limit=50", 3, 50},
		{"page=0&limit=0", 1, 1},
		{"page=-2&limit=500", 1, 100},
		{"page=x&limit=y", 1, 20},
	}
	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		page, limit := pageParams(c)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Errorf("pageParams(%q) = %d,%d, mau %d,%d",
				tc.query, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestJsonListMeta(t *testing.T) {
	cases := []struct {
		total          int64
		limit          int
		wantTotalPages int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{99, 10, 10},
	}
	e := echo.New()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		if err := jsonList(c, []int{}, 1, tc.limit, tc.total); err != nil {
			t.Fatalf("jsonList: %v", err)
		}
		var body struct {
			Meta Meta `json:"meta"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Meta.TotalPages != tc.wantTotalPages {
			t.Errorf("total=%d limit=%d: totalPages=%d, mau %d",
				tc.total, tc.limit, body.Meta.TotalPages, tc.wantTotalPages)
		}
	}
}
