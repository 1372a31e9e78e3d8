package handlers

import (
	"crypto/rand"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FakhrezaAldino/app-sipandu-sub000/database"
	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

// Admin mengelola akun pendamping: daftar, buat, reset password (balas
// one-time password), aktif/nonaktif.
type PendampingAccountHandler struct{}

func NewPendampingAccountHandler() *PendampingAccountHandler {
	return &PendampingAccountHandler{}
}

/* ====================== DTOs ====================== */

type createPendampingReq struct {
	Nama     string `json:"nama"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type patchPendampingReq struct {
	Aktif *bool `json:"aktif"`
}

type pendampingDTO struct {
	ID        uint   `json:"id"`
	Nama      string `json:"nama"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Aktif     bool   `json:"aktif"`
	Kelompok  int64  `json:"kelompok"`
	UpdatedAt string `json:"updated_at"`
}

/* ====================== Helpers ====================== */

func toPendampingDTO(u models.User, kelompok int64) pendampingDTO {
	return pendampingDTO{
		ID: u.ID, Nama: u.Nama, Username: u.Username, Email: u.Email,
		Aktif: u.Aktif, Kelompok: kelompok,
		UpdatedAt: u.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func hitungKelompok(pendampingID uint) int64 {
	var cnt int64
	database.DB.Model(&models.Kelompok{}).Where("pendamping_id = ?", pendampingID).Count(&cnt)
	return cnt
}

// satu query GROUP BY untuk seluruh halaman, bukan satu Count per akun
func hitungKelompokPerPendamping(ids []uint) map[uint]int64 {
	out := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return out
	}
	var rows []struct {
		PendampingID uint
		Jumlah       int64
	}
	database.DB.Model(&models.Kelompok{}).
		Select("pendamping_id, COUNT(*) AS jumlah").
		Where("pendamping_id IN ?", ids).
		Group("pendamping_id").
		Scan(&rows)
	for _, r := range rows {
		out[r.PendampingID] = r.Jumlah
	}
	return out
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// password acak dari crypto/rand (bukan seed waktu)
func randomPassword(n int) string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	if n < 8 {
		n = 8
	}
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			out[i] = alphabet[0]
			continue
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}

func (h *PendampingAccountHandler) findPendamping(id uint) (*models.User, error) {
	var u models.User
	if err := database.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

/* ====================== Handlers ====================== */

// GET /admin/pendamping
func (h *PendampingAccountHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	page, limit := pageParams(c)

	tx := database.DB.Model(&models.User{}).Where("role = ?", models.RolePendamping)
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("nama ILIKE ? OR username ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menghitung akun", nil)
	}
	var users []models.User
	if err := tx.Order("nama ASC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca akun", nil)
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	perPendamping := hitungKelompokPerPendamping(ids)

	out := make([]pendampingDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toPendampingDTO(u, perPendamping[u.ID]))
	}
	return jsonList(c, out, page, limit, total)
}

// POST /admin/pendamping
func (h *PendampingAccountHandler) Create(c echo.Context) error {
	var req createPendampingReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}
	req.Nama = strings.Join(strings.Fields(req.Nama), " ")
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	var details []FieldError
	if req.Nama == "" {
		details = append(details, FieldError{Field: "nama", Message: "wajib diisi"})
	}
	if req.Username == "" {
		details = append(details, FieldError{Field: "username", Message: "wajib diisi"})
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		details = append(details, FieldError{Field: "email", Message: "email tidak valid"})
	}
	if len(req.Password) < 8 {
		details = append(details, FieldError{Field: "password", Message: "minimal 8 karakter"})
	}
	if len(details) > 0 {
		return jsonError(c, http.StatusUnprocessableEntity, "validasi gagal", details)
	}

	var cnt int64
	if err := database.DB.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).Count(&cnt).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal memeriksa akun", nil)
	}
	if cnt > 0 {
		return jsonError(c, http.StatusConflict, "username atau email sudah dipakai", nil)
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membuat hash password", nil)
	}
	u := models.User{
		Nama:         req.Nama,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         models.RolePendamping,
		Aktif:        true,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan akun", nil)
	}
	return jsonCreated(c, toPendampingDTO(u, 0))
}

// POST /admin/pendamping/:id/reset — kembalikan one-time password
func (h *PendampingAccountHandler) ResetPassword(c echo.Context) error {
	id64, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if id64 == 0 {
		return jsonError(c, http.StatusBadRequest, "id tidak valid", nil)
	}

	u, err := h.findPendamping(uint(id64))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "akun tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca akun", nil)
	}
	if u.Role != models.RolePendamping {
		return jsonError(c, http.StatusForbidden, "bukan akun pendamping", nil)
	}

	newPW := randomPassword(12)
	hash, err := hashPassword(newPW)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membuat hash password", nil)
	}
	if err := database.DB.Model(u).Update("password_hash", hash).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan akun", nil)
	}
	return jsonOK(c, map[string]any{"one_time_password": newPW})
}

// PATCH /admin/pendamping/:id — ubah flag aktif
func (h *PendampingAccountHandler) Patch(c echo.Context) error {
	id64, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if id64 == 0 {
		return jsonError(c, http.StatusBadRequest, "id tidak valid", nil)
	}

	var req patchPendampingReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}
	if req.Aktif == nil {
		return jsonError(c, http.StatusBadRequest, "tidak ada field yang diubah", nil)
	}

	u, err := h.findPendamping(uint(id64))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "akun tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca akun", nil)
	}
	if u.Role != models.RolePendamping {
		return jsonError(c, http.StatusForbidden, "bukan akun pendamping", nil)
	}

	if err := database.DB.Model(u).Update("aktif", *req.Aktif).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan akun", nil)
	}
	return jsonOK(c, toPendampingDTO(*u, hitungKelompok(u.ID)))
}
