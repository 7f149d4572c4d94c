package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// visitor is one client's token bucket. Tokens refill continuously at
// burst-per-window up to the burst size.
type visitor struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter throttles per-client-IP request rates on the abuse-prone
// public endpoints (login, contact form). The clock is injectable so refill
// behavior is testable without sleeping.
type RateLimiter struct {
	burst      float64
	window     time.Duration
	staleAfter time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor

	now func() time.Time
}

// NewRateLimiter allows burst requests per window for each client IP.
func NewRateLimiter(burst int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		burst:      float64(burst),
		window:     window,
		staleAfter: 10 * time.Minute,
		visitors:   make(map[string]*visitor),
		now:        time.Now,
	}
	go rl.sweep()
	return rl
}

// sweep evicts buckets idle longer than staleAfter so one-off clients do not
// accumulate forever.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := rl.now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.staleAfter {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// take spends one token for the client when available; otherwise it reports
// how long the client must wait for the next token.
func (rl *RateLimiter) take(clientIP string) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[clientIP]
	if !ok {
		rl.visitors[clientIP] = &visitor{tokens: rl.burst - 1, lastSeen: now}
		return 0, true
	}

	perToken := rl.window.Seconds() / rl.burst
	v.tokens += now.Sub(v.lastSeen).Seconds() / perToken
	if v.tokens > rl.burst {
		v.tokens = rl.burst
	}
	v.lastSeen = now

	if v.tokens >= 1 {
		v.tokens--
		return 0, true
	}
	wait := time.Duration((1 - v.tokens) * perToken * float64(time.Second))
	return wait, false
}

// Middleware rejects over-limit clients with 429 and a Retry-After hint.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if wait, ok := rl.take(c.ClientIP()); !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			c.Abort()
			return
		}
		c.Next()
	}
}
