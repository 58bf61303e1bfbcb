// Package web serves the quiz as an HTML form and a JSON API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/render"
	"github.com/abhisek/quizbox/internal/scoring"
	"github.com/abhisek/quizbox/internal/store"
	"github.com/abhisek/quizbox/internal/surface"
)

// Options configures a Server.
type Options struct {
	// Attempts records scored submissions. Nil disables recording.
	Attempts store.AttemptRepo

	// CORSOrigins are allowed to call /api.
	CORSOrigins []string

	Logger *slog.Logger
}

// Server holds the bank and its collaborators. Every request builds its
// own surfaces, so a Server is safe for concurrent use.
type Server struct {
	bank     quiz.Bank
	renderer *render.Renderer
	attempts store.AttemptRepo
	origins  []string
	logger   *slog.Logger
}

// NewServer creates a Server for bank.
func NewServer(bank quiz.Bank, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		bank:     bank,
		renderer: render.New(bank),
		attempts: opts.Attempts,
		origins:  opts.CORSOrigins,
		logger:   logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(s.logger), middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/submit", s.handleSubmit)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(ar chi.Router) {
		ar.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
		ar.Get("/quiz", s.handleQuiz)
		ar.Post("/score", s.handleScore)
	})
	return r
}

// grade builds a fresh surface, applies fill to it and scores it.
func (s *Server) grade(fill func(*surface.Surface)) (*surface.Surface, *surface.Results, scoring.Result) {
	quizSurface := surface.New()
	s.renderer.Build(quizSurface)
	fill(quizSurface)

	results := &surface.Results{}
	res := scoring.New(s.bank, quizSurface, results).Submit()
	return quizSurface, results, res
}

// record stores a submission when recording is enabled. Failures are
// logged and never fail the request.
func (s *Server) record(ctx context.Context, source string, res scoring.Result) {
	if s.attempts == nil {
		return
	}
	id, err := s.attempts.AppendAttempt(ctx, store.AttemptData{
		BankTitle: s.bank.Title(),
		Source:    source,
		Score:     res.Score,
		Total:     res.Total,
		Responses: res.Responses(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "record attempt", "error", err)
		return
	}
	s.logger.DebugContext(ctx, "attempt recorded", "id", id, "score", res.Score, "total", res.Total)
}

// ServeConfig configures Serve.
type ServeConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Serve runs handler on cfg.Addr until ctx is cancelled, then shuts the
// server down gracefully.
func Serve(ctx context.Context, cfg ServeConfig, handler http.Handler) error {
	if cfg.Addr == "" {
		return errors.New("web: addr is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
