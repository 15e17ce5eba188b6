package observability

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header name for request/correlation IDs
const RequestIDHeader = "X-Request-ID"

// responseWriter is a wrapper around gin.ResponseWriter that captures response size
type responseWriter struct {
	gin.ResponseWriter
	size int
}

func (w *responseWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.size += size
	return size, err
}

func (w *responseWriter) WriteString(s string) (int, error) {
	size, err := w.ResponseWriter.WriteString(s)
	w.size += size
	return size, err
}

// routePath returns the matched route pattern so static files and unknown
// paths don't explode metric labels
func routePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}

// RequestLoggingMiddleware logs all HTTP requests with correlation IDs and
// records HTTP metrics
func RequestLoggingMiddleware(logger *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		correlationID := c.GetHeader(RequestIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}
		c.Set("correlation_id", correlationID)
		c.Header(RequestIDHeader, correlationID)

		ctx := WithCorrelationID(c.Request.Context(), correlationID)
		c.Request = c.Request.WithContext(ctx)

		rw := &responseWriter{ResponseWriter: c.Writer}
		c.Writer = rw

		logger.Debug(ctx, "HTTP request started", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"query":      c.Request.URL.RawQuery,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		})

		c.Next()

		duration := time.Since(start)
		fields := map[string]interface{}{
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"status":        c.Writer.Status(),
			"duration_ms":   duration.Milliseconds(),
			"response_size": rw.size,
			"ip":            c.ClientIP(),
		}

		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
			logger.Error(ctx, "HTTP request failed", c.Errors.Last().Err, fields)
		} else if c.Writer.Status() >= 400 {
			logger.Warn(ctx, "HTTP request completed with error status", fields)
		} else {
			logger.Info(ctx, "HTTP request completed", fields)
		}

		RecordHTTPMetrics(c.Request.Method, routePath(c), c.Writer.Status(), duration, rw.size)
	}
}

// RecoveryMiddleware recovers from panics and logs them
func RecoveryMiddleware(logger *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "Panic recovered", nil, map[string]interface{}{
					"panic":  err,
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "An unexpected error occurred",
					},
				})
			}
		}()

		c.Next()
	}
}

// HealthHandler serves the aggregated health checks. Degraded still answers
// 200; unhealthy answers 503.
func HealthHandler(checker *HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := checker.GetHealthResponse(c.Request.Context())

		statusCode := http.StatusOK
		if response.Status == HealthStatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, response)
	}
}

// MetricsHandler serves a JSON snapshot of the collected metrics
func MetricsHandler(collector *MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"metrics":   collector.GetAll(),
			"timestamp": time.Now(),
		})
	}
}

// CORS allows every origin, method and header, and logs preflight requests
func CORS(logger *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "*")
		c.Writer.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			if origin != "" {
				logger.Debug(c.Request.Context(), "CORS preflight request", map[string]interface{}{
					"origin": origin,
					"method": c.Request.Header.Get("Access-Control-Request-Method"),
				})
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
