package dashboard

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// responseWriter wraps http.ResponseWriter to capture the response code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs every request with its method, URI, duration and
// response code.
func (s *Server) loggingMiddleware() mux.MiddlewareFunc {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			respWriter := newResponseWriter(w)

			handler.ServeHTTP(respWriter, req)

			entry := s.logger.WithFields(logrus.Fields{
				"method":       req.Method,
				"uri":          req.RequestURI,
				"duration":     time.Since(start),
				"responseCode": respWriter.statusCode,
			})

			if respWriter.statusCode < http.StatusInternalServerError {
				entry.Info("api")
			} else {
				entry.Error("api")
			}
		})
	}
}

// corsMiddleware allows the dashboard front end to call the API from its
// own origin and answers preflight requests.
func (s *Server) corsMiddleware() mux.MiddlewareFunc {
	allowed := make(map[string]any, len(s.cfg.CORSOrigins))
	for _, origin := range s.cfg.CORSOrigins {
		allowed[origin] = nil
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			origin := req.Header.Get("Origin")
			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}

			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			handler.ServeHTTP(w, req)
		})
	}
}
