package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/FakhrezaAldino/app-sipandu-sub000/database"
	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

type KelompokHandler struct {
	validate *validator.Validate
}

func NewKelompokHandler() *KelompokHandler {
	return &KelompokHandler{validate: validator.New()}
}

type kelompokPayload struct {
	Nama      string `json:"nama" validate:"required,max=120"`
	Provinsi  string `json:"provinsi" validate:"required,max=80"`
	Kabupaten string `json:"kabupaten" validate:"required,max=80"`
	Kecamatan string `json:"kecamatan" validate:"required,max=80"`
	Desa      string `json:"desa" validate:"required,max=80"`
}

func (p *kelompokPayload) normalize() {
	p.Nama = strings.Join(strings.Fields(p.Nama), " ")
	p.Provinsi = strings.TrimSpace(p.Provinsi)
	p.Kabupaten = strings.TrimSpace(p.Kabupaten)
	p.Kecamatan = strings.TrimSpace(p.Kecamatan)
	p.Desa = strings.TrimSpace(p.Desa)
}

func fieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: strings.ToLower(fe.Field()), Message: fe.Tag()})
	}
	return out
}

// GET /kelompok?q=&page=&limit=
// pendamping hanya melihat dampingannya sendiri, admin melihat semua
func (h *KelompokHandler) List(c echo.Context) error {
	sess := currentSession(c)
	q := strings.TrimSpace(c.QueryParam("q"))
	page, limit := pageParams(c)

	tx := database.DB.Model(&models.Kelompok{})
	if sess.Role != models.RoleAdmin {
		tx = tx.Where("pendamping_id = ?", sess.UserID)
	}
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("nama ILIKE ? OR desa ILIKE ? OR kecamatan ILIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menghitung kelompok", nil)
	}
	var items []models.Kelompok
	if err := tx.Order("nama ASC").Limit(limit).Offset((page - 1) * limit).Find(&items).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca kelompok", nil)
	}
	return jsonList(c, items, page, limit, total)
}

// GET /kelompok/:id — detail plus jumlah anggota (diturunkan, tidak disimpan)
func (h *KelompokHandler) Get(c echo.Context) error {
	var kel models.Kelompok
	if err := database.DB.First(&kel, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "kelompok tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca kelompok", nil)
	}
	if !bolehAksesKelompok(currentSession(c), kel.PendampingID) {
		return jsonError(c, http.StatusForbidden, "kelompok bukan dampingan anda", nil)
	}

	var jumlahKPM int64
	database.DB.Model(&models.KPM{}).
		Where("kelompok_id = ? AND status = ?", kel.ID, models.KPMAktif).
		Count(&jumlahKPM)

	return jsonOK(c, map[string]any{"kelompok": kel, "jumlah_kpm": jumlahKPM})
}

// POST /kelompok
func (h *KelompokHandler) Create(c echo.Context) error {
	sess := currentSession(c)
	var p kelompokPayload
	if err := c.Bind(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}
	p.normalize()
	if err := h.validate.Struct(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "validasi gagal", fieldErrors(err))
	}

	kel := models.Kelompok{
		Nama: p.Nama, Provinsi: p.Provinsi, Kabupaten: p.Kabupaten,
		Kecamatan: p.Kecamatan, Desa: p.Desa, PendampingID: sess.UserID,
	}
	if err := database.DB.Create(&kel).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan kelompok", nil)
	}
	return jsonCreated(c, kel)
}

// PUT /kelompok/:id
func (h *KelompokHandler) Update(c echo.Context) error {
	var kel models.Kelompok
	if err := database.DB.First(&kel, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "kelompok tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca kelompok", nil)
	}
	if !bolehAksesKelompok(currentSession(c), kel.PendampingID) {
		return jsonError(c, http.StatusForbidden, "kelompok bukan dampingan anda", nil)
	}

	var p kelompokPayload
	if err := c.Bind(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}
	p.normalize()
	if err := h.validate.Struct(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "validasi gagal", fieldErrors(err))
	}

	kel.Nama = p.Nama
	kel.Provinsi = p.Provinsi
	kel.Kabupaten = p.Kabupaten
	kel.Kecamatan = p.Kecamatan
	kel.Desa = p.Desa
	if err := database.DB.Save(&kel).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan kelompok", nil)
	}
	return jsonOK(c, kel)
}

// DELETE /kelompok/:id — hanya kalau tidak ada KPM tersisa
func (h *KelompokHandler) Delete(c echo.Context) error {
	var kel models.Kelompok
	if err := database.DB.First(&kel, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "kelompok tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca kelompok", nil)
	}
	if !bolehAksesKelompok(currentSession(c), kel.PendampingID) {
		return jsonError(c, http.StatusForbidden, "kelompok bukan dampingan anda", nil)
	}

	var sisa int64
	database.DB.Model(&models.KPM{}).Where("kelompok_id = ?", kel.ID).Count(&sisa)
	if sisa > 0 {
		return jsonError(c, http.StatusConflict, "kelompok masih punya anggota, pindahkan dulu", nil)
	}
	if err := database.DB.Delete(&kel).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menghapus kelompok", nil)
	}
	return c.NoContent(http.StatusNoContent)
}
