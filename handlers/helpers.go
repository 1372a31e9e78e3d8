package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/FakhrezaAldino/app-sipandu-sub000/middlewares"
	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

/* ====================== Amplop respons ======================
Sumber daya tunggal : {success, data, message?, details?}
Daftar berhalaman   : {data, meta:{page, limit, total, totalPages}}
details = [{field, message}] untuk error validasi per field.
*/

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func jsonOK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": data})
}

func jsonCreated(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "data": data})
}

func jsonMessage(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]any{"success": code < 400, "data": nil, "message": message})
}

func jsonError(c echo.Context, code int, message string, details []FieldError) error {
	body := map[string]any{"success": false, "message": message}
	if len(details) > 0 {
		body["details"] = details
	}
	return c.JSON(code, body)
}

func jsonList(c echo.Context, data any, page, limit int, total int64) error {
	totalPages := 0
	if total > 0 && limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": data,
		"meta": Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages},
	})
}

/* ====================== Query & sesi ====================== */

// string -> int; kalau gagal pakai default
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// page/limit dari query string, limit dibatasi 1..100
func pageParams(c echo.Context) (page, limit int) {
	page = atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	limit = atoiOr(c.QueryParam("limit"), 20)
	if limit < 1 {
		limit = 1
	} else if limit > 100 {
		limit = 100
	}
	return
}

func currentSession(c echo.Context) middlewares.Session {
	sess, _ := c.Get("session").(middlewares.Session)
	return sess
}

// pendamping hanya boleh menyentuh kelompok miliknya; admin bebas
func bolehAksesKelompok(sess middlewares.Session, pendampingID uint) bool {
	if sess.Role == models.RoleAdmin {
		return true
	}
	return sess.UserID != 0 && sess.UserID == pendampingID
}
