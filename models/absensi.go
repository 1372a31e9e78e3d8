package models

import "time"

const (
	AbsensiHadir = "hadir"
	AbsensiIzin  = "izin"
	AbsensiSakit = "sakit"
	AbsensiAlpha = "alpha"
)

// Absensi = pertemuan bulanan satu kelompok. Identitas sesi adalah
// (kelompok_id, periode); tanggal lengkap tetap disimpan untuk tampilan.
type Absensi struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	KelompokID uint   `json:"kelompok_id" gorm:"not null;uniqueIndex:idx_absensi_kelompok_periode"`
	Tanggal    string `json:"tanggal" gorm:"size:10;not null"` // YYYY-MM-DD
	Periode    string `json:"periode" gorm:"size:7;not null;uniqueIndex:idx_absensi_kelompok_periode"` // YYYY-MM
	Keterangan string `json:"keterangan" gorm:"type:text"`
	Versi      int    `json:"versi" gorm:"not null;default:1"` // token optimistic concurrency

	Details []AbsensiDetail `json:"details" gorm:"foreignKey:AbsensiID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AbsensiDetail struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	AbsensiID uint   `json:"absensi_id" gorm:"not null;uniqueIndex:idx_detail_absensi_kpm"`
	KpmID     uint   `json:"kpm_id" gorm:"not null;uniqueIndex:idx_detail_absensi_kpm"`
	Status    string `json:"status" gorm:"size:10;not null"` // hadir|izin|sakit|alpha
	Catatan   string `json:"catatan" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidAbsensiStatus(s string) bool {
	switch s {
	case AbsensiHadir, AbsensiIzin, AbsensiSakit, AbsensiAlpha:
		return true
	}
	return false
}
