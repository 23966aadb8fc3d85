package web

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPRateLimiterBurst(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 3, CleanupInterval: time.Hour})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d within burst was rejected", i)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request past the burst should be rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("another IP has its own budget")
	}

	allowed, rejected := rl.Stats()
	if allowed != 4 || rejected != 1 {
		t.Errorf("Stats() = %d allowed, %d rejected; want 4, 1", allowed, rejected)
	}
}

func TestIPRateLimiterCleanup(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1, CleanupInterval: time.Minute})
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	rl.cleanup(time.Now())
	if _, ok := rl.limiters.Load("10.0.0.1"); !ok {
		t.Fatal("fresh limiter should survive cleanup")
	}

	rl.cleanup(time.Now().Add(3 * time.Minute))
	if _, ok := rl.limiters.Load("10.0.0.1"); ok {
		t.Error("stale limiter should be dropped")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"remote addr", nil, "192.0.2.1:5555", "192.0.2.1"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.7"},
		{"forwarded single", map[string]string{"X-Forwarded-For": " 203.0.113.8 "}, "10.0.0.1:80", "203.0.113.8"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.1:80", "198.51.100.4"},
		{"no port", nil, "192.0.2.9", "192.0.2.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnLimiter(t *testing.T) {
	c := NewConnLimiter(2)

	if !c.Acquire("a") || !c.Acquire("a") {
		t.Fatal("two slots should be available")
	}
	if c.Acquire("a") {
		t.Error("third slot should be refused")
	}
	if !c.Acquire("b") {
		t.Error("limit is per IP")
	}

	c.Release("a")
	if c.Count("a") != 1 {
		t.Errorf("Count() = %d after release, want 1", c.Count("a"))
	}
	if !c.Acquire("a") {
		t.Error("released slot should be reusable")
	}

	c.Release("b")
	if c.Count("b") != 0 {
		t.Errorf("Count() = %d, want 0", c.Count("b"))
	}
}

func TestAllowedOrigin(t *testing.T) {
	tests := []struct {
		origin string
		extra  []string
		want   bool
	}{
		{"", nil, true},
		{"http://localhost:3000", nil, true},
		{"http://127.0.0.1:8080", nil, true},
		{"https://evil.example", nil, false},
		{"https://arcade.example", []string{"https://arcade.example"}, true},
		{"https://other.example", []string{"*"}, true},
	}

	for _, tt := range tests {
		if got := allowedOrigin(tt.origin, tt.extra); got != tt.want {
			t.Errorf("allowedOrigin(%q, %v) = %v, want %v", tt.origin, tt.extra, got, tt.want)
		}
	}
}
