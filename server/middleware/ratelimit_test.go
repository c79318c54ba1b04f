package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_SlidingWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2, func() time.Time { return now })

	if !rl.allow("a") || !rl.allow("a") {
		t.Fatal("first two requests should pass")
	}
	if rl.allow("a") {
		t.Fatal("third request inside the window should be rejected")
	}
	if !rl.allow("b") {
		t.Fatal("keys are independent")
	}

	now = now.Add(61 * time.Second)
	if !rl.allow("a") {
		t.Fatal("window should have slid")
	}
}

func TestRateLimiter_GC(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(5, func() time.Time { return now })
	rl.allow("idle")

	now = now.Add(6 * time.Minute)
	rl.allow("fresh")

	if _, ok := rl.requests["idle"]; ok {
		t.Error("idle key should have been collected")
	}
	if _, ok := rl.requests["fresh"]; !ok {
		t.Error("fresh key should be kept")
	}
}
