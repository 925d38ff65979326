package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload", rl.Middleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	router := limitedRouter(NewRateLimiter(3, time.Minute))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/upload", nil)
		router.ServeHTTP(w, req)
		if w.Code != 200 {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimiterBlocksBeyondBurst(t *testing.T) {
	router := limitedRouter(NewRateLimiter(2, time.Minute))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/upload", nil)
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != 429 {
		t.Errorf("expected [200 200 429], got %v", codes)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	if !rl.take("1.2.3.4") {
		t.Fatal("first request should pass")
	}
	if rl.take("1.2.3.4") {
		t.Fatal("second immediate request should be blocked")
	}
	time.Sleep(20 * time.Millisecond)
	if !rl.take("1.2.3.4") {
		t.Error("request after refill window should pass")
	}
}

func TestRateLimiterSeparatesClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	if !rl.take("10.0.0.1") {
		t.Fatal("first client should pass")
	}
	if !rl.take("10.0.0.2") {
		t.Error("second client has its own budget")
	}
}
