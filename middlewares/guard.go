package middlewares

import "strings"

// Hasil keputusan akses dibuat eksplisit (bukan kombinasi boolean)
// supaya tidak ada state tak valid.
type GuardDecision int

const (
	GuardAllow GuardDecision = iota
	GuardUnauthenticated
	GuardForbidden
)

// Sesi hasil verifikasi token. Authenticated=false berarti token tidak
// ada/tidak valid; Role bisa kosong walau Authenticated (anomali claim).
type Session struct {
	UserID        uint
	Role          string
	Authenticated bool
}

// Decide = satu fungsi total untuk semua cabang otorisasi:
//  1. tanpa sesi valid -> GuardUnauthenticated
//  2. route butuh role tapi claim role kosong -> GuardForbidden
//     (jangan pernah meloloskan atas data role yang hilang)
//  3. role tidak termasuk himpunan yang diizinkan -> GuardForbidden
//  4. selain itu -> GuardAllow; himpunan kosong = cukup terautentikasi
func Decide(s Session, requiredRoles ...string) GuardDecision {
	if !s.Authenticated {
		return GuardUnauthenticated
	}
	if len(requiredRoles) == 0 {
		return GuardAllow
	}
	role := strings.ToLower(strings.TrimSpace(s.Role))
	if role == "" {
		return GuardForbidden
	}
	for _, r := range requiredRoles {
		if role == strings.ToLower(strings.TrimSpace(r)) {
			return GuardAllow
		}
	}
	return GuardForbidden
}
