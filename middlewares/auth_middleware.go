package middlewares

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims yang kita harapkan (sesuai yang ditandatangani di auth_handler.go)
type Claims struct {
	Sub  uint   `json:"sub"`
	Role string `json:"role"`
	Nama string `json:"nama"`
	jwt.RegisteredClaims
}

// ambil token dari Authorization header
func extractBearer(c echo.Context) (string, error) {
	h := c.Request().Header.Get("Authorization")
	if h == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "MISSING_AUTH_HEADER"})
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_AUTH_HEADER"})
	}
	return parts[1], nil
}

// verifikasi JWT (HS256) lalu simpan sesi di context.
// 401 di sini hanya di-log, tidak ada redirect apa pun dari sisi server.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok, err := extractBearer(c)
			if err != nil {
				log.Printf("[auth] 401 %s %s: header tidak valid", c.Request().Method, c.Path())
				return err
			}
			token, err := jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (any, error) {
				// tolak kalau alg ditukar
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN_METHOD"})
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				log.Printf("[auth] 401 %s %s: token tidak valid", c.Request().Method, c.Path())
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CLAIMS"})
			}
			// cek expiry manual (jaga-jaga kalau lib dikonfigurasi longgar)
			if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "TOKEN_EXPIRED"})
			}
			c.Set("session", Session{
				UserID:        claims.Sub,
				Role:          claims.Role,
				Authenticated: true,
			})
			c.Set("user_id", claims.Sub)
			c.Set("role", claims.Role)
			c.Set("nama", claims.Nama)
			return next(c)
		}
	}
}

// batasi role, misal RequireRole("admin") atau RequireRole("pendamping","admin")
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := c.Get("session").(Session)
			switch Decide(sess, roles...) {
			case GuardUnauthenticated:
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "UNAUTHORIZED"})
			case GuardForbidden:
				if strings.TrimSpace(sess.Role) == "" {
					// role kosong pada token terautentikasi = anomali claim, bukan desain
					log.Printf("[auth] claim role kosong untuk user_id=%d di %s", sess.UserID, c.Path())
				}
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
			}
			return next(c)
		}
	}
}
