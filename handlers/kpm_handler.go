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

type KPMHandler struct {
	validate *validator.Validate
}

func NewKPMHandler() *KPMHandler {
	return &KPMHandler{validate: validator.New()}
}

type kpmPayload struct {
	NamaLengkap string `json:"nama_lengkap" validate:"required,max=120"`
	Nama        string `json:"nama" validate:"-"` // alias legacy, dinormalkan di binder
	NIK         string `json:"nik" validate:"required,len=16,numeric"`
	Status      string `json:"status" validate:"omitempty,oneof=aktif graduasi nonaktif"`
}

// satu titik normalisasi untuk drift skema lama (nama vs nama_lengkap)
func (p *kpmPayload) normalize() {
	p.NamaLengkap = strings.Join(strings.Fields(p.NamaLengkap), " ")
	if p.NamaLengkap == "" && p.Nama != "" {
		p.NamaLengkap = strings.Join(strings.Fields(p.Nama), " ")
	}
	p.NIK = strings.TrimSpace(p.NIK)
	p.Status = strings.TrimSpace(p.Status)
}

// status kosong di payload: saat buat pakai aktif, saat ubah pertahankan
// status tersimpan — KPM graduasi tidak boleh bangkit diam-diam hanya
// karena field status tidak ikut dikirim.
func resolveStatusKPM(dikirim, tersimpan string) string {
	if dikirim != "" {
		return dikirim
	}
	if tersimpan != "" {
		return tersimpan
	}
	return models.KPMAktif
}

type graduasiPayload struct {
	Tanggal    string `json:"tanggal" validate:"required,datetime=2006-01-02"`
	Alasan     string `json:"alasan" validate:"required,max=120"`
	Keterangan string `json:"keterangan"`
}

func (h *KPMHandler) loadKelompokDenganAkses(c echo.Context, kelompokID any) (*models.Kelompok, error) {
	var kel models.Kelompok
	if err := database.DB.First(&kel, "id = ?", kelompokID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, jsonError(c, http.StatusNotFound, "kelompok tidak ditemukan", nil)
		}
		return nil, jsonError(c, http.StatusInternalServerError, "gagal membaca kelompok", nil)
	}
	if !bolehAksesKelompok(currentSession(c), kel.PendampingID) {
		return nil, jsonError(c, http.StatusForbidden, "kelompok bukan dampingan anda", nil)
	}
	return &kel, nil
}

// GET /kelompok/:id/kpm?q=&status=&page=&limit=
func (h *KPMHandler) List(c echo.Context) error {
	kel, err := h.loadKelompokDenganAkses(c, c.Param("id"))
	if kel == nil {
		return err
	}
	q := strings.TrimSpace(c.QueryParam("q"))
	status := strings.TrimSpace(c.QueryParam("status"))
	page, limit := pageParams(c)

	tx := database.DB.Model(&models.KPM{}).Where("kelompok_id = ?", kel.ID)
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("nama_lengkap ILIKE ? OR nik LIKE ?", like, like)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menghitung KPM", nil)
	}
	var items []models.KPM
	if err := tx.Order("nama_lengkap ASC").Limit(limit).Offset((page - 1) * limit).Find(&items).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca KPM", nil)
	}
	return jsonList(c, items, page, limit, total)
}

// POST /kelompok/:id/kpm
func (h *KPMHandler) Create(c echo.Context) error {
	kel, err := h.loadKelompokDenganAkses(c, c.Param("id"))
	if kel == nil {
		return err
	}
	var p kpmPayload
	if err := c.Bind(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}
	p.normalize()
	if err := h.validate.Struct(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "validasi gagal", fieldErrors(err))
	}

	kpm := models.KPM{
		NamaLengkap: p.NamaLengkap,
		NIK:         p.NIK,
		KelompokID:  kel.ID,
		Status:      resolveStatusKPM(p.Status, ""),
	}
	if err := database.DB.Create(&kpm).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return jsonError(c, http.StatusConflict, "NIK sudah terdaftar",
				[]FieldError{{Field: "nik", Message: "sudah terdaftar"}})
		}
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan KPM", nil)
	}
	return jsonCreated(c, kpm)
}

// PUT /kpm/:id
func (h *KPMHandler) Update(c echo.Context) error {
	var kpm models.KPM
	if err := database.DB.First(&kpm, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "KPM tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca KPM", nil)
	}
	kel, err := h.loadKelompokDenganAkses(c, kpm.KelompokID)
	if kel == nil {
		return err
	}

	var p kpmPayload
	if err := c.Bind(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}
	p.normalize()
	if err := h.validate.Struct(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "validasi gagal", fieldErrors(err))
	}

	kpm.NamaLengkap = p.NamaLengkap
	kpm.NIK = p.NIK
	kpm.Status = resolveStatusKPM(p.Status, kpm.Status)
	if err := database.DB.Save(&kpm).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return jsonError(c, http.StatusConflict, "NIK sudah terdaftar",
				[]FieldError{{Field: "nik", Message: "sudah terdaftar"}})
		}
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan KPM", nil)
	}
	return jsonOK(c, kpm)
}

// POST /kpm/:id/graduasi
// Transisi terminal: catat peristiwa lalu ubah status KPM. Idempoten
// dijaga: yang sudah graduasi ditolak 409.
func (h *KPMHandler) Graduasi(c echo.Context) error {
	var kpm models.KPM
	if err := database.DB.First(&kpm, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "KPM tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca KPM", nil)
	}
	kel, err := h.loadKelompokDenganAkses(c, kpm.KelompokID)
	if kel == nil {
		return err
	}
	if kpm.Status == models.KPMGraduasi {
		return jsonError(c, http.StatusConflict, "KPM sudah graduasi", nil)
	}

	var p graduasiPayload
	if err := c.Bind(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}
	p.Alasan = strings.TrimSpace(p.Alasan)
	p.Tanggal = strings.TrimSpace(p.Tanggal)
	if err := h.validate.Struct(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "validasi gagal", fieldErrors(err))
	}

	sess := currentSession(c)
	ev := models.Graduasi{
		KpmID:       kpm.ID,
		Tanggal:     p.Tanggal,
		Alasan:      p.Alasan,
		Keterangan:  strings.TrimSpace(p.Keterangan),
		DicatatOleh: sess.UserID,
	}
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}
		return tx.Model(&kpm).Update("status", models.KPMGraduasi).Error
	})
	if txErr != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal mencatat graduasi", nil)
	}
	return jsonCreated(c, ev)
}

// GET /kpm/:id/graduasi — riwayat peristiwa graduasi KPM
func (h *KPMHandler) RiwayatGraduasi(c echo.Context) error {
	var kpm models.KPM
	if err := database.DB.First(&kpm, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "KPM tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca KPM", nil)
	}
	kel, err := h.loadKelompokDenganAkses(c, kpm.KelompokID)
	if kel == nil {
		return err
	}
	var items []models.Graduasi
	if err := database.DB.Where("kpm_id = ?", kpm.ID).Order("tanggal DESC").Find(&items).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca graduasi", nil)
	}
	return jsonOK(c, items)
}
