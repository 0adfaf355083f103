package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studypdf/studypdf/internal/config"
	"github.com/studypdf/studypdf/internal/docstore"
	"github.com/studypdf/studypdf/internal/groq"
	"github.com/studypdf/studypdf/internal/pipeline"
	"github.com/studypdf/studypdf/internal/processor"
)

// Server is the HTTP API server for studypdf.
type Server struct {
	router       chi.Router
	docs         *docstore.Store
	orchestrator *pipeline.Orchestrator
	jobs         *pipeline.JobStore
	processor    *processor.Processor
	groq         *groq.Client
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(docs *docstore.Store, orch *pipeline.Orchestrator, jobs *pipeline.JobStore, proc *processor.Processor, gq *groq.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		docs:         docs,
		orchestrator: orch,
		jobs:         jobs,
		processor:    proc,
		groq:         gq,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/documents", s.handleUpload)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
		r.Post("/api/documents/{docID}/ask", s.handleAsk)

		r.Post("/api/documents/{docID}/questions", s.handleSubmitQuestion)
		r.Get("/api/questions/{jobID}", s.handleQuestionStatus)
		r.Get("/api/questions/{jobID}/transcript", s.handleTranscript)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
