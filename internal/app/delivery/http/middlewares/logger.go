package middlewares

import (
	"net/http"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (m *Middlewares) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: constvars.StatusOK}

		next.ServeHTTP(recorder, r)

		m.Log.Info("request handled",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.Int("status", recorder.status),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		)
	})
}
