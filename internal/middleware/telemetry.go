package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

// TraceHeader carries the trace id of a traced response.
const TraceHeader = "X-Trace-Id"

// Tracing returns the handlers that put project API calls under a span.
// Health checks, swagger and other non API paths stay untraced.
func Tracing(serviceName string) gin.HandlersChain {
	return gin.HandlersChain{
		otelgin.Middleware(serviceName, otelgin.WithFilter(traced)),
		echoTraceID,
	}
}

func traced(r *http.Request) bool {
	return isAPIPath(r.URL.Path) && r.URL.Path != healthPath
}

func echoTraceID(c *gin.Context) {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
		c.Header(TraceHeader, sc.TraceID().String())
	}
	c.Next()
}
