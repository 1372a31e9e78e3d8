package models

import "time"

// Graduasi = catatan peristiwa KPM keluar dari kepesertaan aktif.
// Status pada record KPM ikut berubah saat peristiwa ini dibuat.
type Graduasi struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	KpmID       uint   `json:"kpm_id" gorm:"index;not null"`
	Tanggal     string `json:"tanggal" gorm:"type:date;not null"`
	Alasan      string `json:"alasan" gorm:"size:120;not null"` // mandiri/sejahtera/pindah/dll
	Keterangan  string `json:"keterangan" gorm:"type:text"`
	DicatatOleh uint   `json:"dicatat_oleh" gorm:"not null"` // user_id pendamping

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
