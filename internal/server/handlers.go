package server

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/quizdesk/internal/submission"
	"github.com/abhisek/quizdesk/internal/wizard"
)

var errNoGenerator = errors.New("question generator is not configured")

func (s *Server) health(c *gin.Context) {
	status := "ok"
	if s.taxErr != nil {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "sessions": s.reg.len()})
}

func (s *Server) standards(c *gin.Context) {
	if s.tax == nil {
		msg := "achievement standards are not loaded"
		var details []string
		if s.taxErr != nil {
			details = []string{s.taxErr.Error()}
		}
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: msg, Details: details})
		return
	}
	c.JSON(http.StatusOK, toGradeDTOs(s.tax))
}

func (s *Server) createSession(c *gin.Context) {
	id, e := s.reg.create()
	e.mu.Lock()
	defer e.mu.Unlock()
	log.Debug().Str("session_id", id).Msg("session created")
	c.JSON(http.StatusCreated, SessionResponse{ID: id, View: s.view(e.session)})
}

func (s *Server) getSession(c *gin.Context) {
	s.withSession(c, func(e *entry) {
		s.respond(c, e)
	})
}

func (s *Server) deleteSession(c *gin.Context) {
	if !s.reg.remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) advance(c *gin.Context) {
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}

	s.withSession(c, func(e *entry) {
		// An empty value is a no-op, anything else must be offered.
		if strings.TrimSpace(req.Value) != "" && e.session.Step <= wizard.StepStandard {
			opts := wizard.Options(e.session, s.tax)
			if !slices.Contains(opts, req.Value) {
				c.JSON(http.StatusBadRequest, ErrorResponse{
					Message: "value is not an option for step " + e.session.Step.String(),
					Details: []string{req.Value},
				})
				return
			}
		}
		e.session = wizard.Dispatch(c.Request.Context(), e.session, wizard.Advance{Value: req.Value}, s.gen)
		s.respond(c, e)
	})
}

func (s *Server) retreat(c *gin.Context) {
	s.withSession(c, func(e *entry) {
		e.session = wizard.Dispatch(c.Request.Context(), e.session, wizard.Retreat{}, s.gen)
		s.respond(c, e)
	})
}

func (s *Server) generate(c *gin.Context) {
	s.withSession(c, func(e *entry) {
		e.session = wizard.Dispatch(c.Request.Context(), e.session, wizard.Generate{}, s.gen)
		s.respond(c, e)
	})
}

func (s *Server) place(c *gin.Context) {
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "slot must be 1, 2 or 3", Details: []string{err.Error()}})
		return
	}

	s.withSession(c, func(e *entry) {
		if e.session.Step != wizard.StepReview || e.session.Generated == "" {
			c.JSON(http.StatusConflict, ErrorResponse{Message: "no generated question to place"})
			return
		}
		e.session = wizard.Dispatch(c.Request.Context(), e.session, wizard.Place{Slot: req.Slot}, s.gen)
		s.respond(c, e)
	})
}

func (s *Server) saveDraft(c *gin.Context) {
	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}

	s.withSession(c, func(e *entry) {
		for i := 0; i < wizard.NumSlots; i++ {
			e.session.SetQuestion(i+1, req.Questions[i], req.ImageURLs[i])
		}
		e.session.ActivityCode = req.ActivityCode
		e.session.TeacherEmail = req.TeacherEmail
		s.respond(c, e)
	})
}

func (s *Server) submit(c *gin.Context) {
	s.withSession(c, func(e *entry) {
		if s.sub == nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "submission storage is not configured"})
			return
		}

		f := submission.Form{
			Questions:    e.session.Questions,
			ImageURLs:    e.session.ImageURLs,
			ActivityCode: e.session.ActivityCode,
			TeacherEmail: e.session.TeacherEmail,
		}
		err := s.sub.Submit(c.Request.Context(), f)

		var verr *submission.ValidationError
		var serr *submission.StorageError
		switch {
		case err == nil:
			c.JSON(http.StatusOK, SubmitResponse{Status: "saved"})
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Message: verr.Error(), Details: verr.Fields})
		case errors.As(err, &serr):
			c.JSON(http.StatusBadGateway, ErrorResponse{Message: "could not save submission", Details: []string{serr.Err.Error()}})
		default:
			log.Error().Err(err).Msg("submit failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "could not save submission"})
		}
	})
}

// withSession resolves the :id session and runs fn with it locked. A
// session already serving another request answers 409.
func (s *Server) withSession(c *gin.Context, fn func(e *entry)) {
	e, ok := s.reg.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "session not found"})
		return
	}
	if !e.mu.TryLock() {
		c.JSON(http.StatusConflict, ErrorResponse{Message: "session is busy"})
		return
	}
	defer e.mu.Unlock()
	fn(e)
}

func (s *Server) respond(c *gin.Context, e *entry) {
	c.JSON(http.StatusOK, SessionResponse{ID: c.Param("id"), View: s.view(e.session)})
}

func (s *Server) view(sess wizard.Session) wizard.View {
	return wizard.Render(sess, s.tax, s.canGen)
}
