// Package httpapi is the REST surface of the service: the login and
// registration endpoints, the user resources, and the middleware
// that resolves bearer tokens into a request principal.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/logging"
	"github.com/dmitrijs2005/placeholder/internal/server/auth"
	"github.com/dmitrijs2005/placeholder/internal/server/models"
	"github.com/dmitrijs2005/placeholder/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// UserService is what the handlers need from the account layer.
type UserService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, r services.Registration) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id string, u services.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// Server routes HTTP requests to the user service.
type Server struct {
	address string
	users   UserService
	tokens  auth.TokenValidator
	logger  logging.Logger
	now     func() time.Time
}

// NewServer creates a Server bound to address.
func NewServer(address string, l logging.Logger, us UserService, tokens auth.TokenValidator) *Server {
	return &Server{
		address: address,
		users:   us,
		tokens:  tokens,
		logger:  l.With("module", "http_server"),
		now:     time.Now,
	}
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)

	mux.Handle("GET /api/users/me", RequireAuthenticated(http.HandlerFunc(s.handleMe)))
	mux.Handle("GET /api/users/{id}", RequireAuthenticated(http.HandlerFunc(s.handleGetUser)))
	mux.Handle("GET /api/users", RequireAuthenticated(http.HandlerFunc(s.handleListUsers)))
	mux.Handle("POST /api/users", RequireAuthenticated(http.HandlerFunc(s.handleRegister)))
	mux.Handle("PUT /api/users/{id}", RequireAuthenticated(http.HandlerFunc(s.handleUpdateUser)))
	mux.Handle("DELETE /api/users/{id}", RequireAuthenticated(http.HandlerFunc(s.handleDeleteUser)))

	return AccessLog(s.logger)(Authenticate(s.tokens, s.logger, s.now)(mux))
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve accepts connections on lis until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
