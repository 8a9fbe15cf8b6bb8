package middleware

import (
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// quietPaths are probe and scrape endpoints left out of the access log.
var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestID reuses the caller's X-Request-ID or mints one, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID, or "" outside of it.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logger writes one access log line per request: id, method, path, status, latency and
// response size. Probe endpoints are skipped unless they fail.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if quietPaths[c.Request.URL.Path] && status < http.StatusInternalServerError {
			return
		}
		log.Printf("[%s] %s %s %d %s %dB",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.RequestURI(),
			status,
			time.Since(start).Round(time.Microsecond),
			max(c.Writer.Size(), 0),
		)
	}
}

// Recovery turns a handler panic into a 500 response in the API error envelope and logs
// the stack with the request id.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[%s] panic: %v\n%s", GetRequestID(c), rec, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "an internal error occurred",
					},
				})
			}
		}()
		c.Next()
	}
}
