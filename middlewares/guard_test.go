package middlewares

import "testing"

func TestDecide(t *testing.T) {
	cases := []struct {
		name  string
		sess  Session
		roles []string
		want  GuardDecision
	}{
		{
			name: "tanpa sesi ke route terproteksi",
			sess: Session{},
			want: GuardUnauthenticated,
		},
		{
			name:  "tanpa sesi walau role cocok-cocok saja",
			sess:  Session{Role: "admin"},
			roles: []string{"admin"},
			want:  GuardUnauthenticated,
		},
		{
			name: "terautentikasi tanpa syarat role",
			sess: Session{UserID: 7, Role: "pendamping", Authenticated: true},
			want: GuardAllow,
		},
		{
			name:  "role cocok",
			sess:  Session{UserID: 7, Role: "pendamping", Authenticated: true},
			roles: []string{"pendamping", "admin"},
			want:  GuardAllow,
		},
		{
			name:  "role tidak cocok",
			sess:  Session{UserID: 7, Role: "pendamping", Authenticated: true},
			roles: []string{"admin"},
			want:  GuardForbidden,
		},
		{
			// claim role hilang = anomali, jangan pernah meloloskan
			name:  "role kosong pada token valid",
			sess:  Session{UserID: 7, Authenticated: true},
			roles: []string{"admin"},
			want:  GuardForbidden,
		},
		{
			name:  "role hanya spasi",
			sess:  Session{UserID: 7, Role: "   ", Authenticated: true},
			roles: []string{"admin"},
			want:  GuardForbidden,
		},
		{
			name:  "perbandingan role tidak peka kapital",
			sess:  Session{UserID: 7, Role: "Admin", Authenticated: true},
			roles: []string{"admin"},
			want:  GuardAllow,
		},
	}
	for _, tc := range cases {
		if got := Decide(tc.sess, tc.roles...); got != tc.want {
			t.Errorf("%s: Decide = %v, mau %v", tc.name, got, tc.want)
		}
	}
}
