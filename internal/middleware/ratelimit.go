package middleware

import (
	"net/http"
	"time"

	"portal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// RateLimit caps request submissions per client IP. Limiters live in an
// expiring LRU so idle clients age out instead of accumulating.
func RateLimit(perMin int) gin.HandlerFunc {
	limiters := expirable.NewLRU[string, *rate.Limiter](
		1000,          // Max 1000 unique sources
		nil,           // No eviction callback
		time.Minute*5, // TTL: 5 minutes
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		limiter, ok := limiters.Get(ip)
		if !ok {
			limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin)
			limiters.Add(ip, limiter)
		}

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Error(http.StatusTooManyRequests, "Too many submissions, try again later"))
			return
		}
		c.Next()
	}
}
