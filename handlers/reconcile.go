package handlers

import (
	"fmt"
	"time"

	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

/*
Rekonsiliasi absensi bulanan: gabungkan roster kelompok dengan sesi yang
sudah ada (kalau ada) menjadi satu baris per anggota. Semua fungsi di file
ini murni — tanpa DB, tanpa I/O — supaya gampang diuji.
*/

type AbsensiRow struct {
	KpmID       uint   `json:"kpm_id"`
	NamaLengkap string `json:"nama_lengkap"`
	Status      string `json:"status"`  // kosong = belum diisi
	Catatan     string `json:"catatan"`
}

// normalizePeriode menerima YYYY-MM atau YYYY-MM-DD dan mengembalikan kunci
// YYYY-MM. Komponen hari diabaikan: identitas sesi hanya tahun-bulan.
func normalizePeriode(input string) (string, error) {
	if t, err := time.Parse("2006-01", input); err == nil {
		return t.Format("2006-01"), nil
	}
	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t.Format("2006-01"), nil
	}
	return "", fmt.Errorf("periode %q bukan YYYY-MM atau YYYY-MM-DD", input)
}

// mergeAbsensiRows menghasilkan tepat satu baris per anggota roster, urutan
// mengikuti roster. Detail milik anggota yang sudah keluar dari roster
// dibuang diam-diam: roster adalah sumber kebenaran keanggotaan.
func mergeAbsensiRows(roster []models.KPM, details []models.AbsensiDetail) []AbsensiRow {
	byKpm := make(map[uint]models.AbsensiDetail, len(details))
	for _, d := range details {
		byKpm[d.KpmID] = d
	}
	rows := make([]AbsensiRow, 0, len(roster))
	for _, k := range roster {
		row := AbsensiRow{KpmID: k.ID, NamaLengkap: k.NamaLengkap}
		if d, ok := byKpm[k.ID]; ok {
			row.Status = d.Status
			row.Catatan = d.Catatan
		}
		rows = append(rows, row)
	}
	return rows
}

// tanggalDiPeriode: identitas sesi adalah tahun-bulan, jadi ubah tanggal
// tidak boleh menggeser sesi ke bulan lain. True jika tanggal jatuh pada
// periode tersebut.
func tanggalDiPeriode(tanggal, periode string) bool {
	p, err := normalizePeriode(tanggal)
	return err == nil && p == periode
}

// versiKonflik: PATCH wajib membawa versi yang dimuat; beda berarti ada
// penyimpanan lain di antaranya dan permintaan harus ditolak 409.
func versiKonflik(dikirim, tersimpan int) bool {
	return dikirim != tersimpan
}

// validateAbsensiRows = gerbang submit. belumDiisi > 0 berarti pengiriman
// ditolak tanpa menyentuh DB; invalid berisi status di luar enum.
func validateAbsensiRows(rows []AbsensiRow) (belumDiisi int, invalid []FieldError) {
	for i, r := range rows {
		if r.Status == "" {
			belumDiisi++
			continue
		}
		if !models.ValidAbsensiStatus(r.Status) {
			invalid = append(invalid, FieldError{
				Field:   fmt.Sprintf("details.%d.status", i),
				Message: fmt.Sprintf("status %q tidak dikenal (hadir/izin/sakit/alpha)", r.Status),
			})
		}
	}
	return
}
