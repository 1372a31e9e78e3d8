package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "rahasia-uji"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("gagal sign token: %v", err)
	}
	return s
}

func doRequest(t *testing.T, token string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	req := httptest.NewRequest(http.MethodGet, "/kelompok", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequireAuth(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("tanpa header", func(t *testing.T) {
		rec := doRequest(t, "", RequireAuth(testSecret))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, mau 401", rec.Code)
		}
	})

	t.Run("token valid", func(t *testing.T) {
		tok := signTestToken(t, jwt.MapClaims{"sub": 5, "role": "pendamping", "nama": "Rina", "exp": exp})
		rec := doRequest(t, tok, RequireAuth(testSecret))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, mau 200", rec.Code)
		}
	})

	t.Run("token kedaluwarsa", func(t *testing.T) {
		tok := signTestToken(t, jwt.MapClaims{"sub": 5, "role": "pendamping", "exp": time.Now().Add(-time.Hour).Unix()})
		rec := doRequest(t, tok, RequireAuth(testSecret))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, mau 401", rec.Code)
		}
	})

	t.Run("secret beda", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": 5, "exp": exp})
		s, _ := tok.SignedString([]byte("secret-lain"))
		rec := doRequest(t, s, RequireAuth(testSecret))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, mau 401", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("role cocok", func(t *testing.T) {
		tok := signTestToken(t, jwt.MapClaims{"sub": 1, "role": "admin", "exp": exp})
		rec := doRequest(t, tok, RequireAuth(testSecret), RequireRole("admin"))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, mau 200", rec.Code)
		}
	})

	t.Run("role salah", func(t *testing.T) {
		tok := signTestToken(t, jwt.MapClaims{"sub": 2, "role": "pendamping", "exp": exp})
		rec := doRequest(t, tok, RequireAuth(testSecret), RequireRole("admin"))
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, mau 403", rec.Code)
		}
	})

	t.Run("claim role hilang tidak diloloskan", func(t *testing.T) {
		tok := signTestToken(t, jwt.MapClaims{"sub": 3, "exp": exp})
		rec := doRequest(t, tok, RequireAuth(testSecret), RequireRole("admin"))
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, mau 403", rec.Code)
		}
	})

	t.Run("tanpa auth middleware tetap 401", func(t *testing.T) {
		rec := doRequest(t, "", RequireRole("admin"))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, mau 401", rec.Code)
		}
	})
}
