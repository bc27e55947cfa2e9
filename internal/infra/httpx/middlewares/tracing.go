package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/lojavirtual/api/internal/infra/httpx")

// Trace opens one span per request, named after method and path, and records
// the chi request id on it so logs and traces can be joined.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("request_id", middleware.GetReqID(r.Context()))),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
