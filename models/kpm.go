package models

import "time"

const (
	KPMAktif    = "aktif"
	KPMGraduasi = "graduasi"
	KPMNonaktif = "nonaktif"
)

// KPM = Keluarga Penerima Manfaat, anggota satu kelompok.
type KPM struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	NamaLengkap string `json:"nama_lengkap" gorm:"size:120;not null"`
	NIK         string `json:"nik" gorm:"size:16;uniqueIndex;not null"` // tepat 16 digit
	KelompokID  uint   `json:"kelompok_id" gorm:"index;not null"`
	Status      string `json:"status" gorm:"size:20;not null;default:'aktif'"` // aktif|graduasi|nonaktif

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
