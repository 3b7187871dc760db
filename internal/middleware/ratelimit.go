package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/naturals/core/internal/pkg/redis"
	"github.com/naturals/core/internal/pkg/response"
)

const (
	loginRateLimitMax    = 5
	loginRateLimitWindow = 15 * time.Minute
)

// LoginRateLimit limits each IP to 5 login attempts per 15-minute window,
// counted in Redis. A missing or unreachable Redis fails open.
func LoginRateLimit(rc *pkgredis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rc == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := time.Now().Unix() / int64(loginRateLimitWindow.Seconds())
		key := fmt.Sprintf("naturals:login_rate:%s:%d", ip, window)

		count, err := rc.Incr(ctx, key)
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			_ = rc.Expire(ctx, key, loginRateLimitWindow)
		}

		if count > loginRateLimitMax {
			c.Header("Retry-After", "900")
			response.TooManyRequests(c, "Too many login attempts from this IP, please try again after 15 minutes")
			return
		}

		c.Next()
	}
}
