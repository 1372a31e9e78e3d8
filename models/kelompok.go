package models

import "time"

type Kelompok struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Nama         string `json:"nama" gorm:"size:120;not null"`
	Provinsi     string `json:"provinsi" gorm:"size:80;not null"`
	Kabupaten    string `json:"kabupaten" gorm:"size:80;not null"`
	Kecamatan    string `json:"kecamatan" gorm:"size:80;not null"`
	Desa         string `json:"desa" gorm:"size:80;not null"`
	PendampingID uint   `json:"pendamping_id" gorm:"index;not null"` // FK -> users.id

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JumlahKPM diturunkan dari roster, tidak disimpan redundan di tabel.
