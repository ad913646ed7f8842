// Package httpapi exposes the account and task services over HTTP/JSON.
// It owns routing, the bearer-token middleware, and the translation of
// service errors to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasklist/internal/logging"
	"github.com/dmitrijs2005/tasklist/internal/server/services"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address       string
	logger        logging.Logger
	users         *services.UserService
	tasks         *services.TaskService
	jwtSecret     []byte
	allowedOrigin string
	handler       http.Handler
}

func NewServer(address string, l logging.Logger, us *services.UserService, ts *services.TaskService, secretKey, allowedOrigin string) *Server {
	s := &Server{
		address:       address,
		logger:        l.With("module", "httpapi"),
		users:         us,
		tasks:         ts,
		jwtSecret:     []byte(secretKey),
		allowedOrigin: allowedOrigin,
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/sign-up/email", s.handleSignUp).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/sign-in/email", s.handleSignIn).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(s.authMiddleware)
	protected.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)
	protected.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	protected.HandleFunc("/tasks", s.handleListTasks).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{id}", s.handleToggleTask).Methods(http.MethodPatch)
	protected.HandleFunc("/tasks/{id}", s.handleRenameTask).Methods(http.MethodPut)
	protected.HandleFunc("/tasks/{id}", s.handleDeleteTask).Methods(http.MethodDelete)

	s.handler = s.corsMiddleware(s.loggingMiddleware(r))

	return s
}

// Handler returns the fully wrapped HTTP handler; exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.handler,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
