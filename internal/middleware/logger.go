package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIPrefix is the path prefix of the versioned API.
const APIPrefix = "/v1/"

const healthPath = APIPrefix + "health/"

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, APIPrefix)
}

// ZapLogger logs every request. API calls are logged at info level,
// everything else (swagger, probes) at debug.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)

		path := c.Request.URL.Path
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", dur.String(),
			"clientIP", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		if isAPIPath(path) && path != healthPath {
			log.Sugar().Infow("HTTP", fields...)
		} else {
			log.Sugar().Debugw("HTTP", fields...)
		}
	}
}
