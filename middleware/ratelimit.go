package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// A spreadsheet import holds a database transaction for its whole run, so
// the excel endpoints get a per-client request cap.

type visitor struct {
	tokens   float64
	lastSeen time.Time
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	burst    float64
	perSec   float64
}

// NewRateLimiter allows burst requests immediately and refills them over
// the given window.
func NewRateLimiter(burst int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		burst:    float64(burst),
		perSec:   float64(burst) / window.Seconds(),
	}
}

func (rl *RateLimiter) take(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.prune(now)

	v, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &visitor{tokens: rl.burst - 1, lastSeen: now}
		return true
	}

	v.tokens += now.Sub(v.lastSeen).Seconds() * rl.perSec
	if v.tokens > rl.burst {
		v.tokens = rl.burst
	}
	v.lastSeen = now

	if v.tokens < 1 {
		return false
	}
	v.tokens--
	return true
}

// prune drops clients idle for over ten minutes. Running inline on each
// request keeps the limiter free of background goroutines, which keeps
// test instances self-contained.
func (rl *RateLimiter) prune(now time.Time) {
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > 10*time.Minute {
			delete(rl.visitors, ip)
		}
	}
}

// Middleware rejects clients that exhausted their budget with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.take(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Demasiadas solicitudes. Intente de nuevo más tarde."})
			c.Abort()
			return
		}
		c.Next()
	}
}
