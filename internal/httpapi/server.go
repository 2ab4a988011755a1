// Package httpapi wires the HTTP surface of the news service.
// It keeps handlers thin, delegating parent checks and vote rules to the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/tinoosan/ncnews/internal/service/article"
	"github.com/tinoosan/ncnews/internal/service/comment"
	"github.com/tinoosan/ncnews/internal/service/relation"
	"github.com/tinoosan/ncnews/internal/service/topic"
	"github.com/tinoosan/ncnews/internal/service/user"
)

// Options tunes the request guards. Zero values disable the guard.
type Options struct {
	RateLimitRPS    int
	RateLimitBurst  int
	MaxRequestBytes int64
}

// Server wires handlers and middleware using Chi.
type Server struct {
	topics   topic.Service
	articles article.Service
	comments comment.Service
	users    user.Service
	parents  *relation.Resolver
	ready    ReadyChecker

	limiter  *rate.Limiter
	maxBytes int64

	log *slog.Logger
	rt  *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
func New(store Store, logger *slog.Logger, opts Options) *Server {
	parents := relation.New(store)
	s := &Server{
		topics:   topic.New(store),
		articles: article.New(store, store, parents),
		comments: comment.New(store, store, parents),
		users:    user.New(store),
		parents:  parents,
		ready:    store,
		maxBytes: opts.MaxRequestBytes,
		log:      logger,
		rt:       chi.NewRouter(),
	}
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst < 1 {
			burst = opts.RateLimitRPS
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// Router exposes the chi router for route introspection (docgen).
func (s *Server) Router() chi.Router { return s.rt }
