package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestForceHTTPS(t *testing.T) {
	h := ForceHTTPS(http.HandlerFunc(ok))

	req := httptest.NewRequest(http.MethodGet, "http://example.test/a?b=1", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("status = %d, want 308", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "https://example.test/a?b=1" {
		t.Fatalf("Location = %q", loc)
	}

	for _, r := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "http://localhost:8080/", nil),
		func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "http://example.test/", nil)
			r.Header.Set("X-Forwarded-Proto", "https")
			return r
		}(),
		func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "https://example.test/", nil)
			r.TLS = &tls.ConnectionState{}
			return r
		}(),
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", r.Host, rr.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := Security(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Fatalf("X-Frame-Options = %q, handler value should win", got)
	}
	if rr.Header().Get("Content-Security-Policy") == "" {
		t.Fatalf("CSP header missing")
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	Logger(http.HandlerFunc(ok)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}
