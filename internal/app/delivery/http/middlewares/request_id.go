package middlewares

import (
	"context"
	"net/http"
	"ptmd-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

// RequestID attaches a request ID to the context and echoes it back in the
// response. An inbound X-Request-ID is honored so callers can correlate.
func (m *Middlewares) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constvars.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUEST_ID_KEY, requestID)
		w.Header().Set(constvars.HeaderXRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
