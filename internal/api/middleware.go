package api

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// requireSession admits requests whose bearer token is validly signed and
// belongs to the current session.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

		if _, err := s.tokens.Verify(token); err != nil {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if !s.session.MatchToken(token) {
			respondError(w, http.StatusUnauthorized, "session not started, log in first")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "too many attempts, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}
