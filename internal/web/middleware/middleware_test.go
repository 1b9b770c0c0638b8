package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/parseos/internal/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
})

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name    string
		require bool
		keys    []string
		header  string
		want    int
	}{
		{"disabled", false, nil, "", http.StatusOK},
		{"missing key", true, []string{"k1"}, "", http.StatusUnauthorized},
		{"invalid key", true, []string{"k1"}, "nope", http.StatusForbidden},
		{"valid key", true, []string{"k1", "k2"}, "k2", http.StatusOK},
		{"no keys configured", true, nil, "k1", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.SecurityConfig{RequireAPIKey: tt.require, APIKeys: tt.keys}
			h := APIKeyAuth(cfg)(okHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/formats", nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want != http.StatusOK && !strings.Contains(rec.Body.String(), `"code":"AUTH00`) {
				t.Errorf("body should carry an auth code: %s", rec.Body.String())
			}
		})
	}
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		realIP     string
		forwarded  string
		want       string
	}{
		{"untrusted keeps socket", []string{"10.0.0.0/8"}, "192.168.1.5:4000", "1.2.3.4", "", "192.168.1.5:4000"},
		{"trusted uses X-Real-IP", []string{"10.0.0.0/8"}, "10.1.2.3:4000", "1.2.3.4", "5.6.7.8", "1.2.3.4"},
		{"trusted uses first forwarded", []string{"10.0.0.0/8"}, "10.1.2.3:4000", "", "5.6.7.8, 10.1.2.3", "5.6.7.8"},
		{"single address entry", []string{"127.0.0.1"}, "127.0.0.1:9000", "1.2.3.4", "", "1.2.3.4"},
		{"invalid header ignored", []string{"10.0.0.0/8"}, "10.1.2.3:4000", "not-an-ip", "", "10.1.2.3:4000"},
		{"no trusted proxies", nil, "10.1.2.3:4000", "1.2.3.4", "", "10.1.2.3:4000"},
		{"bad entry skipped", []string{"bogus", "10.0.0.0/8"}, "10.1.2.3:4000", "1.2.3.4", "", "1.2.3.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.168.1.5:4000", "192.168.1.5"},
		{"1.2.3.4", "1.2.3.4"},
		{"[::1]:80", "::1"},
		{"garbage", "garbage"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if got := ClientIP(req); got != tt.want {
			t.Errorf("ClientIP(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	for _, csp := range []bool{true, false} {
		rec := httptest.NewRecorder()
		SecurityHeaders(csp)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
			t.Errorf("X-Content-Type-Options = %q", got)
		}
		if got := rec.Header().Get("Content-Security-Policy") != ""; got != csp {
			t.Errorf("CSP present = %v, want %v", got, csp)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Close()

	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("a") {
		t.Error("third request should be limited")
	}
	if !rl.Allow("b") {
		t.Error("other clients have their own budget")
	}

	now = now.Add(61 * time.Second)
	if !rl.Allow("a") {
		t.Error("budget should reset after the window")
	}
}

func TestRateLimiter_Handler(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Close()
	h := rl.Handler(okHandler)

	codes := make([]int, 2)
	for i := range codes {
		req := httptest.NewRequest(http.MethodPost, "/api/upload/iva", nil)
		req.RemoteAddr = "1.2.3.4:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes[i] = rec.Code

		if i == 1 && rec.Header().Get("Retry-After") != "60" {
			t.Errorf("Retry-After = %q, want 60", rec.Header().Get("Retry-After"))
		}
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/formats/x", nil)
	req.RemoteAddr = "1.2.3.4:5000"
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"level":"WARN"`, `"status":404`, `"bytes":7`, `"client_ip":"1.2.3.4"`, `"path":"/api/formats/x"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}
