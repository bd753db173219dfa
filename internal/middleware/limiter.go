package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"erp-be/internal/utils"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// Auth / login (strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// General (default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go cleanupVisitors()
}

// getVisitor retrieves or creates a rate limiter for the given identity.
func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes old entries from the visitors map to prevent memory leaks.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

// RateLimitMiddleware checks if the request is allowed by the rate limiter.
// Authenticated users get a bucket per user id, anonymous requests per IP.
func RateLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()

		limit, burst, tier := resolveRateTier(r)

		var identity string
		if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
			identity = "user:" + userID
		} else {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			identity = "ip:" + ip
		}

		limiter := getVisitor(identity+":"+tier, limit, burst)
		if !limiter.Allow() {
			return echo.NewHTTPError(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
		}

		return next(c)
	}
}

// resolveRateTier determines which rate limit policy applies to the request.
func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if r.URL.Path == "/api/v1/register" || r.URL.Path == "/api/v1/login" {
		return limitStrict, burstStrict, "strict"
	}
	return limitGeneral, burstGeneral, "general"
}
