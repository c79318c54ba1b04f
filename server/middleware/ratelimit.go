package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/asrdrop/errors"
)

// RateLimit returns a Gin middleware that allows at most perMinute requests
// per client IP in any sliding one-minute window. perMinute <= 0 disables it.
//
// The ASR backend usually serves one model on one GPU, so the transcription
// routes are the ones worth limiting.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := newRateLimiter(perMinute, time.Now)
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			appErr := errors.RateLimited(perMinute)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Next()
	}
}

type rateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	now      func() time.Time
	lastGC   time.Time
}

func newRateLimiter(limit int, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		now:      now,
		lastGC:   now(),
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-time.Minute)
	rl.gc(now, cutoff)

	valid := filterByTime(rl.requests[key], cutoff)
	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}
	rl.requests[key] = append(valid, now)
	return true
}

// gc drops idle keys at most every five minutes. Called with mu held.
func (rl *rateLimiter) gc(now, cutoff time.Time) {
	if now.Sub(rl.lastGC) < 5*time.Minute {
		return
	}
	rl.lastGC = now
	for key, times := range rl.requests {
		valid := filterByTime(times, cutoff)
		if len(valid) == 0 {
			delete(rl.requests, key)
		} else {
			rl.requests[key] = valid
		}
	}
}

func filterByTime(times []time.Time, cutoff time.Time) []time.Time {
	var result []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}
