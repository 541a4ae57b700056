package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"smartpark/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	limiterMu sync.Mutex
	limiters  = make(map[string]*clientLimiter)
)

// RateLimitMiddleware enforces a per-client request budget keyed by IP.
// Idle limiters are evicted after ten minutes.
func RateLimitMiddleware() gin.HandlerFunc {
	perMin := config.AppConfig.MaxRequestsPerMin
	if perMin <= 0 {
		perMin = 60
	}
	limit := rate.Every(time.Minute / time.Duration(perMin))

	go func() {
		for range time.Tick(time.Minute) {
			limiterMu.Lock()
			for ip, cl := range limiters {
				if time.Since(cl.lastSeen) > 10*time.Minute {
					delete(limiters, ip)
				}
			}
			limiterMu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := clientIP(c)

		limiterMu.Lock()
		cl, ok := limiters[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(limit, perMin)}
			limiters[ip] = cl
		}
		cl.lastSeen = time.Now()
		limiterMu.Unlock()

		if !cl.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}
