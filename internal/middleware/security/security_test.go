package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectSuspiciousRequest(t *testing.T) {
	d := NewDetector()
	tests := []struct {
		name   string
		method string
		target string
		agent  string
		want   bool
	}{
		{"report request", http.MethodGet, "/api/reports/dre?expanded=receita-bruta", "Mozilla/5.0", false},
		{"curl client", http.MethodGet, "/api/reports/dfc?mode=chained", "curl/8.0", false},
		{"path traversal", http.MethodGet, "/api/../../etc/passwd", "", true},
		{"dotenv probe", http.MethodGet, "/.env", "", true},
		{"sql in query", http.MethodGet, "/api/entries?q=1%20union%20select", "", true},
		{"scanner agent", http.MethodGet, "/", "sqlmap/1.7", true},
		{"trace method", "TRACE", "/", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.agent != "" {
				r.Header.Set("User-Agent", tt.agent)
			}
			if got := d.DetectSuspiciousRequest(r); got != tt.want {
				t.Errorf("DetectSuspiciousRequest(%s %s) = %v, want %v", tt.method, tt.target, got, tt.want)
			}
		})
	}
	if got := d.GetMetrics().SuspiciousRequests; got != 5 {
		t.Errorf("SuspiciousRequests = %d, want 5", got)
	}
}

func TestExtractClientIP(t *testing.T) {
	d := NewDetector()
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		realIP     string
		want       string
	}{
		{"direct public peer ignores headers", "203.0.113.5:1234", "198.51.100.1", "", "203.0.113.5"},
		{"trusted proxy forwards", "10.0.0.2:80", "198.51.100.1, 10.0.0.2", "", "198.51.100.1"},
		{"trusted proxy real ip", "127.0.0.1:80", "", "198.51.100.7", "198.51.100.7"},
		{"trusted proxy invalid header", "192.168.1.1:80", "not-an-ip", "", "192.168.1.1"},
		{"unparsable remote", "garbage", "", "", "garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := d.ExtractClientIP(r); got != tt.want {
				t.Errorf("ExtractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
	if got := d.GetMetrics().InvalidIPAttempts; got != 2 {
		t.Errorf("InvalidIPAttempts = %d, want 2", got)
	}
}

func TestDetectorMiddleware(t *testing.T) {
	d := NewDetector()
	h := d.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wp-admin/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("suspicious request status = %d, want 404", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("normal request status = %d, want 200", rec.Code)
	}
}

func TestHeadersMiddleware(t *testing.T) {
	h := NewHeadersMiddleware(DefaultHeadersConfig()).Middleware(NoStoreMiddleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.TLS = &tls.ConnectionState{}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if got := rec.Header().Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains; preload" {
		t.Errorf("Strict-Transport-Security = %q", got)
	}
}
