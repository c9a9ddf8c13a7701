package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/thoga72-SAP/birkenbihllab/pkg/ctxutil"
)

// RequestIDHeader is the header used to propagate request IDs.
const RequestIDHeader = "X-Request-Id"

// RequestID returns middleware that attaches a request ID to the context
// and the response. An incoming X-Request-Id is reused; otherwise a new
// UUID is generated.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
