package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/FakhrezaAldino/app-sipandu-sub000/database"
	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

type AbsensiHandler struct{}

func NewAbsensiHandler() *AbsensiHandler { return &AbsensiHandler{} }

var errKonflikVersi = errors.New("konflik versi")

/* ====================== DTOs ====================== */

type absensiDetailPayload struct {
	KpmID      uint   `json:"kpm_id"`
	Status     string `json:"status"`
	Keterangan string `json:"keterangan"`
}

type absensiPayload struct {
	Tanggal    string                 `json:"tanggal"` // YYYY-MM-DD
	Keterangan string                 `json:"keterangan"`
	Versi      int                    `json:"versi"` // wajib saat PATCH
	Details    []absensiDetailPayload `json:"details"`
}

type absensiFormResponse struct {
	EditMode  bool         `json:"edit_mode"`
	AbsensiID uint         `json:"absensi_id,omitempty"`
	Versi     int          `json:"versi,omitempty"`
	Periode   string       `json:"periode"`
	Tanggal   string       `json:"tanggal,omitempty"`
	Rows      []AbsensiRow `json:"rows"`
}

/* ====================== Helpers ====================== */

func (h *AbsensiHandler) loadKelompok(c echo.Context) (*models.Kelompok, error) {
	var kel models.Kelompok
	if err := database.DB.First(&kel, "id = ?", c.Param("id")).Error; err != nil {
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

// roster aktif kelompok, urut nama
func rosterAktif(kelompokID uint) ([]models.KPM, error) {
	var roster []models.KPM
	err := database.DB.
		Where("kelompok_id = ? AND status = ?", kelompokID, models.KPMAktif).
		Order("nama_lengkap ASC, id ASC").
		Find(&roster).Error
	return roster, err
}

// sesi (kelompok, periode) kalau ada; absennya sesi bukan error
func findSesi(kelompokID uint, periode string) (*models.Absensi, error) {
	var a models.Absensi
	err := database.DB.Preload("Details").
		Where("kelompok_id = ? AND periode = ?", kelompokID, periode).
		First(&a).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// rakit detail dari payload dengan roster sebagai sumber keanggotaan:
// baris payload untuk KPM di luar roster dibuang, lalu digabung per anggota.
func rowsFromPayload(roster []models.KPM, details []absensiDetailPayload) []AbsensiRow {
	asDetails := make([]models.AbsensiDetail, 0, len(details))
	for _, d := range details {
		asDetails = append(asDetails, models.AbsensiDetail{
			KpmID:   d.KpmID,
			Status:  strings.TrimSpace(d.Status),
			Catatan: strings.TrimSpace(d.Keterangan),
		})
	}
	return mergeAbsensiRows(roster, asDetails)
}

/* ====================== Handlers ====================== */

// GET /kelompok/:id/absensi?date=YYYY-MM
// data=null kalau bulan itu belum pernah diabsen (kasus normal, bukan error)
func (h *AbsensiHandler) GetByPeriode(c echo.Context) error {
	kel, err := h.loadKelompok(c)
	if kel == nil {
		return err
	}
	periode, perr := normalizePeriode(strings.TrimSpace(c.QueryParam("date")))
	if perr != nil {
		return jsonError(c, http.StatusBadRequest, perr.Error(),
			[]FieldError{{Field: "date", Message: "format YYYY-MM"}})
	}
	sesi, err := findSesi(kel.ID, periode)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca absensi", nil)
	}
	if sesi == nil {
		return jsonOK(c, nil)
	}
	return jsonOK(c, sesi)
}

// GET /kelompok/:id/absensi/form?date=YYYY-MM
// Form rekonsiliasi: satu baris per anggota roster aktif, pre-filled dari
// sesi yang ada. Roster dan sesi dibaca independen lalu digabung.
func (h *AbsensiHandler) Form(c echo.Context) error {
	kel, err := h.loadKelompok(c)
	if kel == nil {
		return err
	}
	periode, perr := normalizePeriode(strings.TrimSpace(c.QueryParam("date")))
	if perr != nil {
		return jsonError(c, http.StatusBadRequest, perr.Error(),
			[]FieldError{{Field: "date", Message: "format YYYY-MM"}})
	}

	roster, err := rosterAktif(kel.ID)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca roster", nil)
	}
	sesi, err := findSesi(kel.ID, periode)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca absensi", nil)
	}

	resp := absensiFormResponse{Periode: periode}
	if sesi != nil {
		resp.EditMode = true
		resp.AbsensiID = sesi.ID
		resp.Versi = sesi.Versi
		resp.Tanggal = sesi.Tanggal
		resp.Rows = mergeAbsensiRows(roster, sesi.Details)
	} else {
		resp.Rows = mergeAbsensiRows(roster, nil)
	}
	return jsonOK(c, resp)
}

// POST /kelompok/:id/absensi
func (h *AbsensiHandler) Create(c echo.Context) error {
	kel, err := h.loadKelompok(c)
	if kel == nil {
		return err
	}
	var req absensiPayload
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}

	tanggal := strings.TrimSpace(req.Tanggal)
	periode, perr := normalizePeriode(tanggal)
	if perr != nil {
		return jsonError(c, http.StatusBadRequest, perr.Error(),
			[]FieldError{{Field: "tanggal", Message: "format YYYY-MM-DD"}})
	}
	if _, err := time.Parse("2006-01-02", tanggal); err != nil {
		// kiriman YYYY-MM saja: pakai tanggal 1 bulan itu
		tanggal = periode + "-01"
	}

	roster, err := rosterAktif(kel.ID)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca roster", nil)
	}
	if len(roster) == 0 {
		return jsonError(c, http.StatusUnprocessableEntity, "kelompok belum punya anggota aktif", nil)
	}

	rows := rowsFromPayload(roster, req.Details)
	if belum, invalid := validateAbsensiRows(rows); belum > 0 || len(invalid) > 0 {
		if belum > 0 {
			return jsonError(c, http.StatusUnprocessableEntity,
				fmt.Sprintf("%d anggota belum diisi statusnya", belum), invalid)
		}
		return jsonError(c, http.StatusUnprocessableEntity, "status tidak dikenal", invalid)
	}

	sesi := models.Absensi{
		KelompokID: kel.ID,
		Tanggal:    tanggal,
		Periode:    periode,
		Keterangan: strings.TrimSpace(req.Keterangan),
		Versi:      1,
	}
	for _, r := range rows {
		sesi.Details = append(sesi.Details, models.AbsensiDetail{
			KpmID: r.KpmID, Status: r.Status, Catatan: r.Catatan,
		})
	}

	if err := database.DB.Create(&sesi).Error; err != nil {
		// unique (kelompok_id, periode): bulan ini sudah pernah diabsen
		if strings.Contains(err.Error(), "idx_absensi_kelompok_periode") ||
			strings.Contains(err.Error(), "duplicate key") {
			return jsonError(c, http.StatusConflict,
				"absensi bulan "+periode+" sudah ada, gunakan mode ubah", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan absensi", nil)
	}
	return jsonCreated(c, sesi)
}

// PATCH /absensi/:id
// Mengganti seluruh baris detail dalam satu transaksi. versi wajib sama
// dengan yang dimuat; beda berarti ada penyimpanan lain -> 409.
func (h *AbsensiHandler) Update(c echo.Context) error {
	var sesi models.Absensi
	if err := database.DB.Preload("Details").First(&sesi, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, http.StatusNotFound, "absensi tidak ditemukan", nil)
		}
		return jsonError(c, http.StatusInternalServerError, "gagal membaca absensi", nil)
	}

	var kel models.Kelompok
	if err := database.DB.First(&kel, sesi.KelompokID).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca kelompok", nil)
	}
	if !bolehAksesKelompok(currentSession(c), kel.PendampingID) {
		return jsonError(c, http.StatusForbidden, "kelompok bukan dampingan anda", nil)
	}

	var req absensiPayload
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "payload tidak valid", nil)
	}
	if versiKonflik(req.Versi, sesi.Versi) {
		return jsonError(c, http.StatusConflict,
			"KONFLIK_VERSI: absensi sudah diubah pihak lain, muat ulang dulu", nil)
	}

	// tanggal boleh digeser hanya di dalam bulan periode sesi; kosong
	// berarti pertahankan tanggal lama
	tanggal := strings.TrimSpace(req.Tanggal)
	if tanggal == "" {
		tanggal = sesi.Tanggal
	} else {
		if _, terr := time.Parse("2006-01-02", tanggal); terr != nil {
			return jsonError(c, http.StatusBadRequest, "tanggal harus YYYY-MM-DD",
				[]FieldError{{Field: "tanggal", Message: "format YYYY-MM-DD"}})
		}
		if !tanggalDiPeriode(tanggal, sesi.Periode) {
			return jsonError(c, http.StatusUnprocessableEntity,
				"tanggal "+tanggal+" di luar periode "+sesi.Periode,
				[]FieldError{{Field: "tanggal", Message: "harus di bulan " + sesi.Periode}})
		}
	}

	roster, err := rosterAktif(sesi.KelompokID)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca roster", nil)
	}
	rows := rowsFromPayload(roster, req.Details)
	if belum, invalid := validateAbsensiRows(rows); belum > 0 || len(invalid) > 0 {
		if belum > 0 {
			return jsonError(c, http.StatusUnprocessableEntity,
				fmt.Sprintf("%d anggota belum diisi statusnya", belum), invalid)
		}
		return jsonError(c, http.StatusUnprocessableEntity, "status tidak dikenal", invalid)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// ganti versi dengan guard versi lama supaya dua penyimpan beruntun
		// tidak saling timpa tanpa ketahuan
		res := tx.Model(&models.Absensi{}).
			Where("id = ? AND versi = ?", sesi.ID, req.Versi).
			Updates(map[string]any{
				"tanggal":    tanggal,
				"keterangan": strings.TrimSpace(req.Keterangan),
				"versi":      sesi.Versi + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errKonflikVersi
		}
		if err := tx.Where("absensi_id = ?", sesi.ID).Delete(&models.AbsensiDetail{}).Error; err != nil {
			return err
		}
		details := make([]models.AbsensiDetail, 0, len(rows))
		for _, r := range rows {
			details = append(details, models.AbsensiDetail{
				AbsensiID: sesi.ID, KpmID: r.KpmID, Status: r.Status, Catatan: r.Catatan,
			})
		}
		return tx.Create(&details).Error
	})
	if errors.Is(err, errKonflikVersi) {
		return jsonError(c, http.StatusConflict,
			"KONFLIK_VERSI: absensi sudah diubah pihak lain, muat ulang dulu", nil)
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menyimpan absensi", nil)
	}

	var out models.Absensi
	if err := database.DB.Preload("Details").First(&out, sesi.ID).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca ulang absensi", nil)
	}
	return jsonOK(c, out)
}

// GET /kelompok/:id/absensi/riwayat
func (h *AbsensiHandler) Riwayat(c echo.Context) error {
	kel, err := h.loadKelompok(c)
	if kel == nil {
		return err
	}
	page, limit := pageParams(c)

	tx := database.DB.Model(&models.Absensi{}).Where("kelompok_id = ?", kel.ID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal menghitung riwayat", nil)
	}
	var items []models.Absensi
	if err := tx.Preload("Details").
		Order("periode DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&items).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca riwayat", nil)
	}
	return jsonList(c, items, page, limit, total)
}
