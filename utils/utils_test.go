package utils

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOnlyDigits(t *testing.T) {
	tests := map[string]string{
		"98765 43210":     "9876543210",
		"+91-98765-43210": "919876543210",
		"abc":             "",
		"٣٤٥12":           "12",
	}
	for in, want := range tests {
		if got := OnlyDigits(in); got != want {
			t.Errorf("OnlyDigits(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShortID(t *testing.T) {
	a, b := ShortID(8), ShortID(8)
	if len(a) != 8 || a == b {
		t.Fatalf("ShortID returned %q and %q", a, b)
	}
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, 418, "teapot")
	if rec.Code != 418 {
		t.Fatalf("code = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"error":"teapot"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
