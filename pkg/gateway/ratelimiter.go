package gateway

import (
	"sync"
	"time"
)

const rateWindow = time.Minute

// RateLimiter implements per-IP rate limiting with a sliding window
type RateLimiter struct {
	mu              sync.RWMutex
	requests        map[string][]time.Time
	maxPerWindow    int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
}

// NewRateLimiter creates a new rate limiter allowing maxPerMinute requests
// per client IP
func NewRateLimiter(maxPerMinute int) *RateLimiter {
	rl := &RateLimiter{
		requests:        make(map[string][]time.Time),
		maxPerWindow:    maxPerMinute,
		cleanupInterval: 5 * time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	go rl.startCleanup()

	return rl
}

// CheckLimit reports whether a request from the given IP is allowed and
// records it when it is
func (rl *RateLimiter) CheckLimit(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	recent := pruneOlderThan(rl.requests[ip], now.Add(-rateWindow))

	if len(recent) >= rl.maxPerWindow {
		rl.requests[ip] = recent
		return false
	}

	rl.requests[ip] = append(recent, now)
	return true
}

// GetRetryAfter returns the number of seconds until the window frees a slot
func (rl *RateLimiter) GetRetryAfter(ip string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	recent := rl.requests[ip]
	if len(recent) == 0 {
		return 0
	}

	wait := rateWindow - time.Since(recent[0])
	if wait < 0 {
		return 0
	}
	return int((wait + time.Second - 1) / time.Second)
}

func pruneOlderThan(stamps []time.Time, cutoff time.Time) []time.Time {
	valid := stamps[:0]
	for _, stamp := range stamps {
		if stamp.After(cutoff) {
			valid = append(valid, stamp)
		}
	}
	return valid
}

func (rl *RateLimiter) startCleanup() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanup drops IPs with no requests inside the window
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rateWindow)
	for ip, stamps := range rl.requests {
		recent := pruneOlderThan(stamps, cutoff)
		if len(recent) == 0 {
			delete(rl.requests, ip)
		} else {
			rl.requests[ip] = recent
		}
	}
}

// Stop stops the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCleanup)
	})
}
