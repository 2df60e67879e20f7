package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 10 * time.Minute
)

type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency guards POST endpoints against duplicate submissions. The first
// request with a given Idempotency-Key runs normally and its response body is
// cached; a retry replays the cached body, and an in-flight duplicate is
// rejected with 409.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// runs ahead of auth, so scope by client address rather than user
		scope := c.GetString("user_id")
		if scope == "" {
			scope = c.ClientIP()
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), scope, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		if cached, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json", cached)
			c.Abort()
			return
		}

		// short-lived lock so a crashed handler cannot wedge the key
		acquired, _ := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is already in progress.",
			})
			return
		}
		defer rdb.Del(ctx, lockKey)

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		if !json.Valid(capture.buf.Bytes()) {
			return
		}
		if err := rdb.Set(ctx, cacheKey, capture.buf.Bytes(), idempotencyCacheTTL).Err(); err != nil {
			// next retry simply re-executes the handler
			return
		}
	}
}
