package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"broilers/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

var secret = []byte("test-secret")

func sign(t *testing.T, key []byte, role []string, expires time.Time) string {
	t.Helper()
	claims := &Claims{
		Username: "admin",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestAuthenticate(t *testing.T) {
	auth := NewAuth(secret)
	var gotUser any
	protected := auth.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser = r.Context().Value(globals.UserIDKey)
		w.WriteHeader(http.StatusNoContent)
	})

	future := time.Now().Add(time.Hour)
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + sign(t, secret, []string{RoleAdmin}, future), http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"no bearer prefix", sign(t, secret, []string{RoleAdmin}, future), http.StatusUnauthorized},
		{"wrong key", "Bearer " + sign(t, []byte("other"), []string{RoleAdmin}, future), http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, secret, []string{RoleAdmin}, time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"not admin", "Bearer " + sign(t, secret, []string{"customer"}, future), http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			protected(rr, req, nil)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusNoContent && gotUser != "admin" {
				t.Errorf("user in context = %v", gotUser)
			}
		})
	}
}

func TestSecurityHeadersAndLogging(t *testing.T) {
	h := Logging(SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rr.Code != http.StatusTeapot {
		t.Errorf("status = %d", rr.Code)
	}
	for _, name := range []string{"X-Content-Type-Options", "X-Frame-Options", "Referrer-Policy"} {
		if rr.Header().Get(name) == "" {
			t.Errorf("missing header %s", name)
		}
	}
}
