package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", now)
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
	}

	if allowed, _ := limiter.Allow("10.0.0.1", now); allowed {
		t.Error("Expected request over the limit to be rejected")
	}
}

func TestRateLimiterPerKey(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	now := time.Now()

	if allowed, _ := limiter.Allow("10.0.0.1", now); !allowed {
		t.Fatal("Expected first key to be allowed")
	}
	if allowed, _ := limiter.Allow("10.0.0.2", now); !allowed {
		t.Error("Expected a different key to have its own budget")
	}
	if allowed, _ := limiter.Allow("10.0.0.1", now); allowed {
		t.Error("Expected first key to be exhausted")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	now := time.Now()

	if allowed, _ := limiter.Allow("10.0.0.1", now); !allowed {
		t.Fatal("Expected first request to be allowed")
	}
	if allowed, _ := limiter.Allow("10.0.0.1", now.Add(30*time.Second)); allowed {
		t.Error("Expected request inside the window to be rejected")
	}
	if allowed, _ := limiter.Allow("10.0.0.1", now.Add(61*time.Second)); !allowed {
		t.Error("Expected request after the window to be allowed")
	}
}

func TestRateLimiterRemaining(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)
	now := time.Now()

	tests := []struct {
		request       int
		wantRemaining int
	}{
		{request: 1, wantRemaining: 4},
		{request: 2, wantRemaining: 3},
		{request: 3, wantRemaining: 2},
	}

	for _, tt := range tests {
		_, remaining := limiter.Allow("10.0.0.1", now)
		if remaining != tt.wantRemaining {
			t.Errorf("Request %d: expected remaining %d, got %d", tt.request, tt.wantRemaining, remaining)
		}
	}
}
