package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/FakhrezaAldino/app-sipandu-sub000/database"
	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

// Laporan kegiatan pendamping: usaha / capaian / masalah memakai satu model,
// satu set handler per jenis.
type LaporanHandler struct {
	validate *validator.Validate
}

func NewLaporanHandler() *LaporanHandler {
	return &LaporanHandler{validate: validator.New()}
}

type laporanPayload struct {
	KelompokID   uint   `json:"kelompok_id" validate:"required"`
	KpmID        *uint  `json:"kpm_id"`
	Tanggal      string `json:"tanggal" validate:"required,datetime=2006-01-02"`
	Judul        string `json:"judul" validate:"required,max=120"`
	Isi          string `json:"isi"`
	Omzet        *int64 `json:"omzet"`
	TindakLanjut string `json:"tindak_lanjut"`
	Selesai      bool   `json:"selesai"`
}

func jenisValid(j string) bool {
	return j == "usaha" || j == "capaian" || j == "masalah"
}

func (h *LaporanHandler) bindValid(c echo.Context) (*laporanPayload, error) {
	var p laporanPayload
	if err := c.Bind(&p); err != nil {
		return nil, jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}
	p.Judul = strings.Join(strings.Fields(p.Judul), " ")
	p.Tanggal = strings.TrimSpace(p.Tanggal)
	if err := h.validate.Struct(&p); err != nil {
		return nil, jsonError(c, http.StatusBadRequest, "validasi gagal", fieldErrors(err))
	}
	return &p, nil
}

func (h *LaporanHandler) cekAksesKelompok(c echo.Context, kelompokID uint) error {
	var kel models.Kelompok
	if err := database.DB.First(&kel, kelompokID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "kelompok tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca kelompok", nil)
	}
	if !bolehAksesKelompok(currentSession(c), kel.PendampingID) {
		return jsonError(c, http.StatusForbidden, "kelompok bukan dampingan anda", nil)
	}
	return nil
}

// GET /laporan/:jenis?kelompok_id=&page=&limit=
func (h *LaporanHandler) List(c echo.Context) error {
	jenis := c.Param("jenis")
	if !jenisValid(jenis) {
		return jsonError(c, http.StatusBadRequest, "jenis laporan tidak dikenal", nil)
	}
	page, limit := pageParams(c)
	sess := currentSession(c)

	tx := database.DB.Model(&models.Laporan{}).Where("jenis = ?", jenis)
	if kid := atoiOr(c.QueryParam("kelompok_id"), 0); kid > 0 {
		tx = tx.Where("kelompok_id = ?", kid)
	}
	if sess.Role != models.RoleAdmin {
		// batasi ke kelompok dampingan sendiri
		tx = tx.Where("kelompok_id IN (?)",
			database.DB.Model(&models.Kelompok{}).Select("id").Where("pendamping_id = ?", sess.UserID))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menghitung laporan", nil)
	}
	var items []models.Laporan
	if err := tx.Order("tanggal DESC, id DESC").Limit(limit).Offset((page - 1) * limit).Find(&items).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca laporan", nil)
	}
	return jsonList(c, items, page, limit, total)
}

// POST /laporan/:jenis
func (h *LaporanHandler) Create(c echo.Context) error {
	jenis := c.Param("jenis")
	if !jenisValid(jenis) {
		return jsonError(c, http.StatusBadRequest, "jenis laporan tidak dikenal", nil)
	}
	p, err := h.bindValid(c)
	if p == nil {
		return err
	}
	if err := h.cekAksesKelompok(c, p.KelompokID); err != nil {
		return err
	}

	l := models.Laporan{
		Jenis:        jenis,
		KelompokID:   p.KelompokID,
		KpmID:        p.KpmID,
		Tanggal:      p.Tanggal,
		Judul:        p.Judul,
		Isi:          p.Isi,
		Omzet:        p.Omzet,
		TindakLanjut: p.TindakLanjut,
		Selesai:      p.Selesai,
	}
	if err := database.DB.Create(&l).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan laporan", nil)
	}
	return jsonCreated(c, l)
}

// PUT /laporan/:jenis/:id
func (h *LaporanHandler) Update(c echo.Context) error {
	jenis := c.Param("jenis")
	if !jenisValid(jenis) {
		return jsonError(c, http.StatusBadRequest, "jenis laporan tidak dikenal", nil)
	}
	var l models.Laporan
	if err := database.DB.First(&l, "id = ? AND jenis = ?", c.Param("id"), jenis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "laporan tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca laporan", nil)
	}
	if err := h.cekAksesKelompok(c, l.KelompokID); err != nil {
		return err
	}
	p, err := h.bindValid(c)
	if p == nil {
		return err
	}

	l.KpmID = p.KpmID
	l.Tanggal = p.Tanggal
	l.Judul = p.Judul
	l.Isi = p.Isi
	l.Omzet = p.Omzet
	l.TindakLanjut = p.TindakLanjut
	l.Selesai = p.Selesai
	if err := database.DB.Save(&l).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan laporan", nil)
	}
	return jsonOK(c, l)
}

// DELETE /laporan/:jenis/:id
func (h *LaporanHandler) Delete(c echo.Context) error {
	jenis := c.Param("jenis")
	if !jenisValid(jenis) {
		return jsonError(c, http.StatusBadRequest, "jenis laporan tidak dikenal", nil)
	}
	var l models.Laporan
	if err := database.DB.First(&l, "id = ? AND jenis = ?", c.Param("id"), jenis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "laporan tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca laporan", nil)
	}
	if err := h.cekAksesKelompok(c, l.KelompokID); err != nil {
		return err
	}
	if err := database.DB.Delete(&l).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menghapus laporan", nil)
	}
	return c.NoContent(http.StatusNoContent)
}
