package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/FakhrezaAldino/app-sipandu-sub000/config"
	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("gagal konek database: %v", err)
	}
	DB = db

	// ----- AutoMigrate seluruh skema -----
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Kelompok{},
		&models.KPM{},
		&models.Absensi{},
		&models.AbsensiDetail{},
		&models.Laporan{},
		&models.Graduasi{},
	); err != nil {
		log.Fatalf("auto migrate gagal: %v", err)
	}

	// ----- Bersihkan kolom legacy: kpms.nama (sekarang kanonik nama_lengkap) -----
	if DB.Migrator().HasColumn(&models.KPM{}, "nama") {
		if err := DB.Migrator().DropColumn(&models.KPM{}, "nama"); err != nil {
			log.Printf("[migrate] warn: drop kpms.nama gagal: %v", err)
		} else {
			log.Printf("[migrate] kolom legacy kpms.nama dihapus")
		}
	}
}
