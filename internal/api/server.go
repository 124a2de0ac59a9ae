package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/jobs"
	"github.com/nguyentantai21042004/lecture-notes/internal/llm"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the HTTP front end: upload form, job pages and JSON API.
type Server struct {
	router chi.Router
	runner *jobs.Runner
	stats  *llm.Stats
	log    logger.Logger
	cfg    *config.Config
	pages  *template.Template
}

// NewServer creates and configures the HTTP server. stats may be nil.
func NewServer(cfg *config.Config, runner *jobs.Runner, stats *llm.Stats, log logger.Logger) (*Server, error) {
	pages, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		runner: runner,
		stats:  stats,
		log:    log,
		cfg:    cfg,
		pages:  pages,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Get("/", s.handleIndex)
	r.Post("/lectures", s.handleSubmitForm)
	r.Get("/lectures/{jobID}", s.handleLecturePage)
	r.Get("/lectures/{jobID}/packet.md", s.handlePacketMarkdown)
	r.Get("/lectures/{jobID}/packet.docx", s.handlePacketDocx)

	r.Route("/api", func(r chi.Router) {
		r.Post("/lectures", s.handleSubmitAPI)
		r.Get("/lectures/{jobID}", s.handleLectureStatus)
		r.Get("/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
