package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/secmon-lab/briareus/pkg/usecase"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
	"github.com/secmon-lab/briareus/pkg/utils/safe"
)

// Server exposes the assessment engine as a REST surface. It is an
// integration wrapper only: all outputs are the flat record shapes from
// the model package.
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

// Options configures the server
type Options func(*Server)

// New creates the HTTP server over the given use cases
func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/risks", s.listRisks)
		r.Post("/risks", s.createRisk)
		r.Get("/risks/{id}", s.getRisk)
		r.Put("/risks/{id}", s.updateRisk)
		r.Delete("/risks/{id}", s.deleteRisk)
		r.Get("/risks/{id}/score", s.getScore)
		r.Post("/edges", s.addEdge)
		r.Get("/edges", s.listEdges)
		r.Post("/assessment", s.runAssessment)
		r.Get("/graph/chains", s.findChains)
		r.Get("/graph/centrality", s.getCentrality)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("ok"))
	})

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.From(r.Context()).Info("access",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
