package delivery

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestID propagates the caller's X-Request-ID or issues a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDKey, reqID)
		c.Writer.Header().Set(RequestIDHeader, reqID)
		c.Next()
	}
}

// RequestLogger writes one entry per request after the handler chain has
// run. Route is the matched pattern and is empty for unmatched paths.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		statusCode := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"request_id": c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"route":      c.FullPath(),
			"status":     statusCode,
			"latency_ms": time.Since(startTime).Milliseconds(),
			"remote_ip":  c.ClientIP(),
		})

		switch {
		case statusCode >= http.StatusInternalServerError:
			entry.Error("Request failed with server error")
		case statusCode >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request completed")
		}
	}
}

// StackTraces controls whether 5xx envelopes include a stack trace.
func StackTraces(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(stackTraceKey, enabled)
		c.Next()
	}
}

// Recovery turns a panic into a 500 envelope whose message is the panic value.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered interface{}) {
		stack := debug.Stack()
		message := fmt.Sprint(recovered)
		if err, ok := recovered.(error); ok {
			message = err.Error()
		}

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(requestIDKey),
		}).Errorf("Panic recovered: %s", message)

		abortWithError(c, http.StatusInternalServerError, message, stack)
	})
}
