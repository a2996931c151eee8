package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the HTTP handler with all routes and middleware.
func (s *Server) NewRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if s.proxied {
		r.Use(middleware.RealIP)
	}
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.Status)
		r.Post("/logout", s.Logout)
		r.Get("/generate-password", s.GeneratePassword)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Post("/setup", s.Setup)
			r.Post("/login", s.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/passwords", s.ListPasswords)
			r.Post("/passwords", s.CreatePassword)
			r.Put("/passwords/{id}", s.UpdatePassword)
			r.Delete("/passwords/{id}", s.DeletePassword)
			r.Post("/backup", s.Backup)
		})
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
