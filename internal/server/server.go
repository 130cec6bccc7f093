// Package server exposes the authoring flow over HTTP. Each client holds
// an opaque session id; the server keeps one wizard session per id.
package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/quizdesk/internal/questiongen"
	"github.com/abhisek/quizdesk/internal/submission"
	"github.com/abhisek/quizdesk/internal/taxonomy"
	"github.com/abhisek/quizdesk/internal/wizard"
)

// Submitter persists a finished question set.
type Submitter interface {
	Submit(ctx context.Context, f submission.Form) error
}

// Deps are the collaborators a Server needs. Taxonomy may be nil, in which
// case TaxonomyErr explains why and only manual entry works.
type Deps struct {
	Taxonomy    *taxonomy.Taxonomy
	TaxonomyErr error
	Generator   wizard.Generator
	Submitter   Submitter
	SessionTTL  time.Duration
}

// Server holds the session registry and the handlers.
type Server struct {
	tax    *taxonomy.Taxonomy
	taxErr error
	gen    wizard.Generator
	canGen bool
	sub    Submitter
	reg    *registry
}

func New(deps Deps) *Server {
	gen := deps.Generator
	if gen == nil {
		gen = questiongen.Unavailable(errNoGenerator)
	}
	return &Server{
		tax:    deps.Taxonomy,
		taxErr: deps.TaxonomyErr,
		gen:    gen,
		canGen: deps.Generator != nil,
		sub:    deps.Submitter,
		reg:    newRegistry(deps.SessionTTL),
	}
}

// NewEngine builds a gin engine with request logging through zerolog,
// panic recovery and permissive CORS.
func NewEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("http_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	return r
}

// Register mounts the API under /api/v1 plus a health probe.
func (s *Server) Register(r gin.IRouter) {
	r.GET("/healthz", s.health)

	api := r.Group("/api/v1")
	api.GET("/standards", s.standards)

	sessions := api.Group("/sessions")
	sessions.POST("", s.createSession)
	sessions.GET("/:id", s.getSession)
	sessions.DELETE("/:id", s.deleteSession)
	sessions.POST("/:id/advance", s.advance)
	sessions.POST("/:id/retreat", s.retreat)
	sessions.POST("/:id/generate", s.generate)
	sessions.POST("/:id/place", s.place)
	sessions.PUT("/:id/draft", s.saveDraft)
	sessions.POST("/:id/submit", s.submit)
}

// RunJanitor drops idle sessions every interval until ctx is done.
func (s *Server) RunJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.reg.sweep(); n > 0 {
				log.Debug().Int("expired", n).Int("live", s.reg.len()).Msg("swept idle sessions")
			}
		}
	}
}
