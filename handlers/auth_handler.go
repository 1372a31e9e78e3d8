package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FakhrezaAldino/app-sipandu-sub000/database"
	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

type AuthHandler struct {
	JWTSecret string
}

func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{JWTSecret: secret}
}

func (h *AuthHandler) signJWT(u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"nama": u.Nama,
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

/* ====================== DTOs ====================== */

type loginReq struct {
	Identity string `json:"identity"` // username atau email
	Password string `json:"password"`
}

type changePasswordReq struct {
	Current string `json:"current"`
	Next    string `json:"next"`
}

/* ====================== Handlers ====================== */

// POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}

	id := strings.TrimSpace(req.Identity)
	if id == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "identity dan password wajib diisi", nil)
	}

	var u models.User
	q := database.DB
	if strings.Contains(id, "@") {
		q = q.Where("email = ?", strings.ToLower(id))
	} else {
		q = q.Where("username = ?", id)
	}
	if err := q.First(&u).Error; err != nil {
		return jsonError(c, http.StatusUnauthorized, "kombinasi akun dan password salah", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return jsonError(c, http.StatusUnauthorized, "kombinasi akun dan password salah", nil)
	}
	if !u.Aktif {
		return jsonError(c, http.StatusForbidden, "akun dinonaktifkan, hubungi admin", nil)
	}

	token, err := h.signJWT(&u, 7*24*time.Hour)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membuat token", nil)
	}

	now := time.Now()
	_ = database.DB.Model(&u).Update("last_login", &now).Error

	return jsonOK(c, map[string]any{
		"token": token,
		"user": map[string]any{
			"id": u.ID, "nama": u.Nama, "username": u.Username,
			"email": u.Email, "role": u.Role,
		},
	})
}

// GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	sess := currentSession(c)
	var u models.User
	if err := database.DB.First(&u, sess.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusUnauthorized, "user tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca user", nil)
	}
	return jsonOK(c, u)
}

// PUT /auth/password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	sess := currentSession(c)

	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}
	req.Current = strings.TrimSpace(req.Current)
	req.Next = strings.TrimSpace(req.Next)
	if len(req.Next) < 8 {
		return jsonError(c, http.StatusBadRequest, "password baru minimal 8 karakter",
			[]FieldError{{Field: "next", Message: "minimal 8 karakter"}})
	}

	var u models.User
	if err := database.DB.First(&u, sess.UserID).Error; err != nil {
		return jsonError(c, http.StatusUnauthorized, "user tidak ditemukan", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Current)) != nil {
		return jsonError(c, http.StatusUnauthorized, "password lama salah", nil)
	}

	hash, err := hashPassword(req.Next)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membuat hash password", nil)
	}
	now := time.Now()
	if err := database.DB.Model(&u).Updates(map[string]any{
		"password_hash":        hash,
		"last_password_change": &now,
	}).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan password", nil)
	}
	return jsonMessage(c, http.StatusOK, "password diperbarui")
}
