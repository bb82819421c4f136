package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"catalogo-backend/internal/config"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimitManager struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimitManager() *RateLimitManager {
	m := &RateLimitManager{visitors: make(map[string]*visitor)}
	go m.cleanupLoop()
	return m
}

func (m *RateLimitManager) getVisitor(ip string, requests, windowSeconds int) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, exists := m.visitors[ip]
	if !exists {
		limit := rate.Limit(float64(requests) / float64(windowSeconds))
		v = &visitor{limiter: rate.NewLimiter(limit, requests)}
		m.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (m *RateLimitManager) cleanupLoop() {
	for range time.Tick(time.Minute) {
		m.mu.Lock()
		for ip, v := range m.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(m.visitors, ip)
			}
		}
		m.mu.Unlock()
	}
}

// RateLimitMiddleware limits request rate per client IP. Static assets and
// uploaded images bypass the limiter so page loads are not throttled.
func RateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil || shouldBypassRateLimit(c.Request) {
			c.Next()
			return
		}

		limiter := manager.getVisitor(c.ClientIP(), cfg.RateLimitRequests, cfg.RateLimitWindow)
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func shouldBypassRateLimit(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	staticPrefixes := []string{
		"/static/",
		"/uploads/",
	}

	for _, prefix := range staticPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}
