package handlers

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

func TestHashPassword(t *testing.T) {
	t.Run("hash bisa diverifikasi balik", func(t *testing.T) {
		hash, err := hashPassword("rahasia-123")
		if err != nil {
			t.Fatalf("hashPassword: %v", err)
		}
		if hash == "" || hash == "rahasia-123" {
			t.Fatalf("hash tidak wajar: %q", hash)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("rahasia-123")); err != nil {
			t.Errorf("hash tidak cocok dengan password asal: %v", err)
		}
	})

	t.Run("password terlalu panjang mengembalikan error, bukan hash kosong", func(t *testing.T) {
		// bcrypt menolak input > 72 byte; error ini wajib sampai ke pemanggil
		_, err := hashPassword(strings.Repeat("x", 100))
		if err == nil {
			t.Error("mau error untuk password 100 byte, dapat nil")
		}
	})
}

func TestToPendampingDTO(t *testing.T) {
	u := models.User{
		ID:        7,
		Nama:      "Rina Wati",
		Username:  "rina",
		Email:     "rina@example.com",
		Aktif:     true,
		UpdatedAt: time.Date(2025, 3, 17, 9, 30, 0, 0, time.UTC),
	}

	dto := toPendampingDTO(u, 4)
	if dto.ID != 7 || dto.Nama != "Rina Wati" || dto.Username != "rina" {
		t.Errorf("identitas tidak terbawa: %+v", dto)
	}
	if dto.Kelompok != 4 {
		t.Errorf("kelompok = %d, mau 4", dto.Kelompok)
	}
	if dto.UpdatedAt != "2025-03-17 09:30:00" {
		t.Errorf("updated_at = %q", dto.UpdatedAt)
	}

	// jumlah kelompok datang dari pemanggil, satu query untuk satu halaman
	if nol := toPendampingDTO(u, 0); nol.Kelompok != 0 {
		t.Errorf("kelompok = %d, mau 0", nol.Kelompok)
	}
}

func TestRandomPassword(t *testing.T) {
	pw := randomPassword(12)
	if len(pw) != 12 {
		t.Fatalf("panjang = %d, mau 12", len(pw))
	}
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	for _, r := range pw {
		if !strings.ContainsRune(alphabet, r) {
			t.Errorf("karakter di luar alfabet: %q", r)
		}
	}
	if randomPassword(12) == pw && randomPassword(12) == pw {
		t.Error("tiga kali generate menghasilkan password yang sama")
	}
}
