package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires middleware and routes. Rate limiting runs before CORS
// so rejected clients cost as little as possible.
func (s *Server) newRouter() *chi.Mux {
	r := chi.NewRouter()

	if !s.cfg.DisableRequestLog {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  s.logger.StandardLog(),
			NoColor: true,
		}))
	}
	r.Use(middleware.Recoverer)
	r.Use(countRequests)
	r.Use(s.limiter.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/preview.png", s.handlePreview)
	})

	r.Get("/ws", s.handleWS)

	return r
}

// checkOrigin accepts non-browser clients, same-host pages and the
// configured CORS origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://") == r.Host {
		return true
	}
	for _, pattern := range s.cfg.CORSOrigins {
		if matchOrigin(pattern, origin) {
			return true
		}
	}

	s.logger.Warn("websocket origin rejected", "origin", origin)
	rejectedTotal.WithLabelValues("origin").Inc()
	return false
}

// matchOrigin matches origin against a pattern with at most one "*".
func matchOrigin(pattern, origin string) bool {
	prefix, suffix, wild := strings.Cut(pattern, "*")
	if !wild {
		return pattern == origin
	}
	return len(origin) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(origin, prefix) &&
		strings.HasSuffix(origin, suffix)
}
