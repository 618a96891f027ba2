package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

type Options struct {
	// Timeout bounds a whole request, SOAP round trips included.
	Timeout     time.Duration
	CORSOrigins []string
}

type Server struct {
	mux  *chi.Mux
	cors *cors.Cors
}

func New(o Options) *Server {
	if o.Timeout <= 0 {
		o.Timeout = 45 * time.Second
	}
	m := chi.NewRouter()

	// All middlewares go here (before any routes are added)
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(o.Timeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	c := cors.New(cors.Options{
		AllowedOrigins:   o.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "If-None-Match", "X-Request-Id"},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: len(o.CORSOrigins) > 0 && o.CORSOrigins[0] != "*",
	})
	return &Server{mux: m, cors: c}
}

// Mux returns the router behind the CORS handler.
func (s *Server) Mux() http.Handler { return s.cors.Handler(s.mux) }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
