// Package api exposes the vault over HTTP/JSON using chi.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/services"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

// TokenVerifier validates a bearer token's signature and expiry.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// SessionMatcher reports whether a token belongs to the live session.
type SessionMatcher interface {
	MatchToken(token string) bool
}

type Options struct {
	Addr           string
	AllowedOrigins []string
	// LoginRatePerMinute throttles setup and login per client IP; zero
	// disables throttling.
	LoginRatePerMinute int
	LoginBurst         int
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites those headers,
	// otherwise clients pick their own rate-limit key.
	TrustProxyHeaders bool
}

type Server struct {
	addr    string
	origins []string
	proxied bool
	auth    services.AuthService
	records services.RecordService
	backup  services.BackupService
	tokens  TokenVerifier
	session SessionMatcher
	limiter *multiLimiter
	logger  logging.Logger
}

func NewServer(opts Options, auth services.AuthService, records services.RecordService, backup services.BackupService,
	tokens TokenVerifier, session SessionMatcher, logger logging.Logger) *Server {

	s := &Server{
		addr:    opts.Addr,
		origins: opts.AllowedOrigins,
		proxied: opts.TrustProxyHeaders,
		auth:    auth,
		records: records,
		backup:  backup,
		tokens:  tokens,
		session: session,
		logger:  logger.With("module", "http"),
	}

	if opts.LoginRatePerMinute > 0 {
		burst := opts.LoginBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = newMultiLimiter(rate.Limit(float64(opts.LoginRatePerMinute)/60), burst, 10*time.Minute)
	}

	return s
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve handles requests on lis and shuts down gracefully when ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server started", "addr", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info(ctx, "shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
