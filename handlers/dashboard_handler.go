package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FakhrezaAldino/app-sipandu-sub000/database"
	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /admin/dashboard
// agregat seluruh program untuk halaman admin
func (h *DashboardHandler) Admin(c echo.Context) error {
	var (
		cntPendamping int64
		cntKelompok   int64
		cntKPMAktif   int64
		cntGraduasi   int64
		cntNonaktif   int64
		cntAbsensi    int64
		cntMasalah    int64
	)

	bulanIni := time.Now().Format("2006-01")

	database.DB.Model(&models.User{}).Where("role = ? AND aktif", models.RolePendamping).Count(&cntPendamping)
	database.DB.Model(&models.Kelompok{}).Count(&cntKelompok)
	database.DB.Model(&models.KPM{}).Where("status = ?", models.KPMAktif).Count(&cntKPMAktif)
	database.DB.Model(&models.KPM{}).Where("status = ?", models.KPMGraduasi).Count(&cntGraduasi)
	database.DB.Model(&models.KPM{}).Where("status = ?", models.KPMNonaktif).Count(&cntNonaktif)
	database.DB.Model(&models.Absensi{}).Where("periode = ?", bulanIni).Count(&cntAbsensi)
	database.DB.Model(&models.Laporan{}).Where("jenis = ? AND NOT selesai", "masalah").Count(&cntMasalah)

	return jsonOK(c, map[string]any{
		"pendamping":        cntPendamping,
		"kelompok":          cntKelompok,
		"kpm_aktif":         cntKPMAktif,
		"kpm_graduasi":      cntGraduasi,
		"kpm_nonaktif":      cntNonaktif,
		"absensi_bulan_ini": cntAbsensi,
		"masalah_terbuka":   cntMasalah,
		"periode":           bulanIni,
	})
}

// GET /pendamping/dashboard
// ringkasan dampingan sendiri + kelompok yang belum diabsen bulan berjalan
func (h *DashboardHandler) Pendamping(c echo.Context) error {
	sess := currentSession(c)
	bulanIni := time.Now().Format("2006-01")

	var kelompokIDs []uint
	if err := database.DB.Model(&models.Kelompok{}).
		Where("pendamping_id = ?", sess.UserID).
		Pluck("id", &kelompokIDs).Error; err != nil {
		return jsonError(c, http.StatusInternalServerError, "gagal membaca kelompok", nil)
	}

	var cntKPM, cntGraduasi, sudahAbsen int64
	if len(kelompokIDs) > 0 {
		database.DB.Model(&models.KPM{}).
			Where("kelompok_id IN ? AND status = ?", kelompokIDs, models.KPMAktif).Count(&cntKPM)
		database.DB.Model(&models.KPM{}).
			Where("kelompok_id IN ? AND status = ?", kelompokIDs, models.KPMGraduasi).Count(&cntGraduasi)
		database.DB.Model(&models.Absensi{}).
			Where("kelompok_id IN ? AND periode = ?", kelompokIDs, bulanIni).Count(&sudahAbsen)
	}

	return jsonOK(c, map[string]any{
		"kelompok":          len(kelompokIDs),
		"kpm_aktif":         cntKPM,
		"kpm_graduasi":      cntGraduasi,
		"absensi_bulan_ini": sudahAbsen,
		"belum_absen":       int64(len(kelompokIDs)) - sudahAbsen,
		"periode":           bulanIni,
	})
}
