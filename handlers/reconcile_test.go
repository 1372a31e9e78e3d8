package handlers

import (
	"reflect"
	"testing"

	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

func kpm(id uint, nama string) models.KPM {
	return models.KPM{ID: id, NamaLengkap: nama, Status: models.KPMAktif}
}

func detail(kpmID uint, status, catatan string) models.AbsensiDetail {
	return models.AbsensiDetail{KpmID: kpmID, Status: status, Catatan: catatan}
}

func TestNormalizePeriode(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-03", "2025-03", false},
		{"2025-03-17", "2025-03", false}, // komponen hari dibuang
		{"2025-03-01", "2025-03", false},
		{"2025-13", "", true},
		{"03-2025", "", true},
		{"", "", true},
		{"2025", "", true},
	}
	for _, tc := range cases {
		got, err := normalizePeriode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("normalizePeriode(%q): harusnya error, dapat %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("normalizePeriode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("normalizePeriode(%q) = %q, mau %q", tc.in, got, tc.want)
		}
	}
}

// satu baris per anggota roster, berapa pun detail yang tersimpan
func TestMergeKelengkapanBaris(t *testing.T) {
	roster := []models.KPM{kpm(1, "Aminah"), kpm(2, "Budi"), kpm(3, "Citra")}

	cases := []struct {
		name    string
		details []models.AbsensiDetail
	}{
		{"tanpa sesi", nil},
		{"sesi kosong", []models.AbsensiDetail{}},
		{"sebagian terisi", []models.AbsensiDetail{detail(2, models.AbsensiHadir, "")}},
		{"semua terisi", []models.AbsensiDetail{
			detail(1, models.AbsensiHadir, ""),
			detail(2, models.AbsensiIzin, "acara keluarga"),
			detail(3, models.AbsensiAlpha, ""),
		}},
	}
	for _, tc := range cases {
		rows := mergeAbsensiRows(roster, tc.details)
		if len(rows) != len(roster) {
			t.Errorf("%s: dapat %d baris, mau %d", tc.name, len(rows), len(roster))
		}
		for i, r := range rows {
			if r.KpmID != roster[i].ID {
				t.Errorf("%s: urutan roster berubah di indeks %d", tc.name, i)
			}
		}
	}
}

func TestMergePrefillDanAnggotaBaru(t *testing.T) {
	// A/B/C sudah diabsen, D baru masuk kelompok setelahnya
	roster := []models.KPM{kpm(1, "Aminah"), kpm(2, "Budi"), kpm(3, "Citra"), kpm(4, "Dewi")}
	details := []models.AbsensiDetail{
		detail(1, models.AbsensiHadir, ""),
		detail(2, models.AbsensiIzin, "acara keluarga"),
		detail(3, models.AbsensiAlpha, ""),
	}

	rows := mergeAbsensiRows(roster, details)
	want := []AbsensiRow{
		{KpmID: 1, NamaLengkap: "Aminah", Status: models.AbsensiHadir},
		{KpmID: 2, NamaLengkap: "Budi", Status: models.AbsensiIzin, Catatan: "acara keluarga"},
		{KpmID: 3, NamaLengkap: "Citra", Status: models.AbsensiAlpha},
		{KpmID: 4, NamaLengkap: "Dewi"}, // status kosong -> submit terblokir
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("merge = %+v, mau %+v", rows, want)
	}

	belum, invalid := validateAbsensiRows(rows)
	if belum != 1 || len(invalid) != 0 {
		t.Errorf("gate: belum=%d invalid=%v, mau belum=1 tanpa invalid", belum, invalid)
	}
}

// detail milik anggota yang sudah keluar roster dibuang diam-diam
func TestMergeBuangAnggotaLama(t *testing.T) {
	roster := []models.KPM{kpm(1, "Aminah"), kpm(3, "Citra")}
	details := []models.AbsensiDetail{
		detail(1, models.AbsensiHadir, ""),
		detail(2, models.AbsensiSakit, "sudah pindah kelompok"),
		detail(3, models.AbsensiHadir, ""),
	}

	rows := mergeAbsensiRows(roster, details)
	if len(rows) != 2 {
		t.Fatalf("dapat %d baris, mau 2", len(rows))
	}
	for _, r := range rows {
		if r.KpmID == 2 {
			t.Errorf("detail anggota lama ikut terbawa: %+v", r)
		}
	}
}

func TestValidateGate(t *testing.T) {
	cases := []struct {
		name        string
		rows        []AbsensiRow
		wantBelum   int
		wantInvalid int
	}{
		{"semua valid", []AbsensiRow{
			{KpmID: 1, Status: models.AbsensiHadir},
			{KpmID: 2, Status: models.AbsensiIzin},
			{KpmID: 3, Status: models.AbsensiSakit},
			{KpmID: 4, Status: models.AbsensiAlpha},
		}, 0, 0},
		{"dua kosong", []AbsensiRow{
			{KpmID: 1, Status: models.AbsensiHadir},
			{KpmID: 2},
			{KpmID: 3},
		}, 2, 0},
		{"status liar", []AbsensiRow{
			{KpmID: 1, Status: "bolos"},
			{KpmID: 2, Status: models.AbsensiHadir},
		}, 0, 1},
		{"kosong semua", []AbsensiRow{{KpmID: 1}, {KpmID: 2}}, 2, 0},
	}
	for _, tc := range cases {
		belum, invalid := validateAbsensiRows(tc.rows)
		if belum != tc.wantBelum || len(invalid) != tc.wantInvalid {
			t.Errorf("%s: belum=%d invalid=%d, mau %d/%d",
				tc.name, belum, len(invalid), tc.wantBelum, tc.wantInvalid)
		}
	}
}

// merge adalah fungsi murni: input sama -> output identik
func TestMergeIdempoten(t *testing.T) {
	roster := []models.KPM{kpm(1, "Aminah"), kpm(2, "Budi")}
	details := []models.AbsensiDetail{detail(1, models.AbsensiHadir, "tepat waktu")}

	first := mergeAbsensiRows(roster, details)
	second := mergeAbsensiRows(roster, details)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("dua kali merge beda hasil: %+v vs %+v", first, second)
	}
}

// mode ubah hanya untuk periode yang persis sama; lewat normalizePeriode
// dua tanggal di bulan yang sama menghasilkan kunci identik, beda bulan tidak
func TestPeriodeMenentukanMode(t *testing.T) {
	a, _ := normalizePeriode("2025-03-05")
	b, _ := normalizePeriode("2025-03-28")
	if a != b {
		t.Errorf("tanggal sebulan harus satu kunci: %q vs %q", a, b)
	}
	cLain, _ := normalizePeriode("2025-04-05")
	if a == cLain {
		t.Errorf("beda bulan tidak boleh satu kunci: %q", a)
	}
}

// geser tanggal boleh, geser bulan tidak: identitas sesi adalah YYYY-MM
func TestTanggalDiPeriode(t *testing.T) {
	cases := []struct {
		tanggal string
		periode string
		want    bool
	}{
		{"2025-03-05", "2025-03", true},
		{"2025-03-31", "2025-03", true},
		{"2025-04-01", "2025-03", false}, // sehari lewat, sudah bulan lain
		{"2026-03-05", "2025-03", false}, // bulan sama, tahun beda
		{"31-03-2025", "2025-03", false}, // format salah -> tolak, bukan diam-diam diganti
		{"2025-03-XX", "2025-03", false},
		{"", "2025-03", false},
	}
	for _, tc := range cases {
		if got := tanggalDiPeriode(tc.tanggal, tc.periode); got != tc.want {
			t.Errorf("tanggalDiPeriode(%q, %q) = %v, mau %v",
				tc.tanggal, tc.periode, got, tc.want)
		}
	}
}

// PATCH wajib membawa versi yang dimuat; selisih ke arah mana pun konflik
func TestVersiKonflik(t *testing.T) {
	cases := []struct {
		name      string
		dikirim   int
		tersimpan int
		want      bool
	}{
		{"versi cocok", 3, 3, false},
		{"versi awal", 1, 1, false},
		{"tertinggal satu", 2, 3, true},
		{"mendahului", 4, 3, true},
		{"nol vs tersimpan", 0, 1, true},
	}
	for _, tc := range cases {
		if got := versiKonflik(tc.dikirim, tc.tersimpan); got != tc.want {
			t.Errorf("%s: versiKonflik(%d, %d) = %v, mau %v",
				tc.name, tc.dikirim, tc.tersimpan, got, tc.want)
		}
	}
}
