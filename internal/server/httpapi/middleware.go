package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasklist/internal/server/auth"
)

type ctxKey string

const subjectIDKey ctxKey = "subjectID"

// SubjectID returns the authenticated subject id placed into the request
// context by the auth middleware.
func SubjectID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(subjectIDKey).(string)
	return id, ok
}

// authMiddleware extracts and verifies the bearer token. Every failure is
// answered with the same generic 401; the sub-cause is only logged, never
// sent, so clients cannot probe why verification failed.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			s.unauthorized(w, r, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.unauthorized(w, r, "invalid authorization header format")
			return
		}

		claims, err := auth.ParseToken(parts[1], s.jwtSecret)
		if err != nil {
			s.unauthorized(w, r, err.Error())
			return
		}
		if claims.Subject == "" {
			s.unauthorized(w, r, "token has no subject")
			return
		}

		ctx := context.WithValue(r.Context(), subjectIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) unauthorized(w http.ResponseWriter, r *http.Request, cause string) {
	s.logger.Warn(r.Context(), "request rejected", "path", r.URL.Path, "cause", cause)
	writeError(w, http.StatusUnauthorized, "unauthorized")
}

// statusRecorder captures the status code written by a handler for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}

// corsMiddleware mirrors the configured frontend origin and answers
// preflight requests before routing happens.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
