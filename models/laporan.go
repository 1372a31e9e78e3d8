package models

import "time"

// Laporan memakai satu model untuk 3 jenis catatan pendamping:
// usaha (kegiatan ekonomi) / capaian / masalah
type Laporan struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Jenis      string `json:"jenis" gorm:"type:varchar(20);index"` // usaha | capaian | masalah
	KelompokID uint   `json:"kelompok_id" gorm:"index;not null"`
	KpmID      *uint  `json:"kpm_id,omitempty" gorm:"index"` // opsional, laporan bisa level kelompok
	Tanggal    string `json:"tanggal" gorm:"type:date;not null"`
	Judul      string `json:"judul" gorm:"type:varchar(120);not null"`
	Isi        string `json:"isi" gorm:"type:text"`

	// ----- USAHA (kegiatan ekonomi KPM) -----
	Omzet *int64 `json:"omzet,omitempty"` // rupiah per bulan, jika relevan

	// ----- MASALAH -----
	TindakLanjut string `json:"tindak_lanjut,omitempty" gorm:"type:text"`
	Selesai      bool   `json:"selesai" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
