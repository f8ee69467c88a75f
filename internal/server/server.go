// Package server exposes stored hands over HTTP. Every request replays
// the hand from its record, so the database only ever holds records.
package server

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/record"
	"github.com/lox/holdem-engine/internal/store"
)

// HandStore is the persistence the server needs.
type HandStore interface {
	Save(ctx context.Context, rec *record.Record) error
	Load(ctx context.Context, id string) (*record.Record, error)
	List(ctx context.Context) ([]store.Summary, error)
	Delete(ctx context.Context, id string) error
}

// Server serves the hand API.
type Server struct {
	hands  HandStore
	logger *log.Logger
	opts   []game.Option
	router chi.Router

	watchers *hub

	// mu serialises replays so that read-modify-write of a record and the
	// shared rng are never interleaved.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewServer creates a server. The game options are passed to every
// replay, which is how the evaluator and split rule are configured.
func NewServer(hands HandStore, logger *log.Logger, rng *rand.Rand, opts ...game.Option) *Server {
	s := &Server{
		hands:    hands,
		logger:   logger.WithPrefix("server"),
		opts:     opts,
		rng:      rng,
		watchers: newHub(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Post("/resume", s.handleResume)
	r.Route("/hands", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Post("/actions", s.handleAction)
			r.Get("/phh", s.handlePHH)
			r.Get("/watch", s.handleWatch)
		})
	})
	return r
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting hand server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
