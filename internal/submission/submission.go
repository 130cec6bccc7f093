// Package submission validates a finished question set and appends it as
// one row to tabular storage.
package submission

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// TimestampLayout is the local-time format of the first column.
const TimestampLayout = "2006-01-02 15:04:05"

// NumQuestions is the fixed size of a question set.
const NumQuestions = 3

// RowAppender appends one row to a sheet-like store. Implementations must
// either append the whole row or nothing.
type RowAppender interface {
	AppendRow(ctx context.Context, row []string) error
}

// Form is what a teacher submits.
type Form struct {
	Questions    [NumQuestions]string
	ImageURLs    [NumQuestions]string
	ActivityCode string
	TeacherEmail string
}

// Handler validates forms and appends them to storage.
type Handler struct {
	primary RowAppender
	mirror  RowAppender
	now     func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithMirror also writes every successfully appended row to m. Mirror
// failures are logged and never reported to the caller.
func WithMirror(m RowAppender) Option {
	return func(h *Handler) { h.mirror = m }
}

// WithClock overrides the time source used for the timestamp column.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates a Handler that appends to primary.
func NewHandler(primary RowAppender, opts ...Option) *Handler {
	h := &Handler{primary: primary, now: time.Now}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Submit checks that all three questions and the activity code are present
// and appends one row. It returns *ValidationError without touching storage
// when fields are missing, and *StorageError when the append fails.
func (h *Handler) Submit(ctx context.Context, f Form) error {
	f.ActivityCode = strings.TrimSpace(f.ActivityCode)
	f.TeacherEmail = strings.TrimSpace(f.TeacherEmail)

	if missing := Missing(f); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	row := Row(f, h.now())
	if err := h.primary.AppendRow(ctx, row); err != nil {
		log.Error().Err(err).Str("activity_code", f.ActivityCode).Msg("append submission failed")
		return &StorageError{Err: err}
	}

	log.Info().Str("activity_code", f.ActivityCode).Msg("submission saved")

	if h.mirror != nil {
		if err := h.mirror.AppendRow(ctx, row); err != nil {
			log.Warn().Err(err).Str("activity_code", f.ActivityCode).Msg("mirror submission failed")
		}
	}
	return nil
}

// Missing lists the required fields of f that are blank, in form order.
func Missing(f Form) []string {
	var missing []string
	for i, q := range f.Questions {
		if strings.TrimSpace(q) == "" {
			missing = append(missing, "question"+strconv.Itoa(i+1))
		}
	}
	if strings.TrimSpace(f.ActivityCode) == "" {
		missing = append(missing, "activity_code")
	}
	return missing
}

// Row lays f out as the nine stored columns: timestamp, activity code,
// each question followed by its image URL, then the teacher e-mail.
func Row(f Form, at time.Time) []string {
	row := make([]string, 0, 3+2*NumQuestions)
	row = append(row, at.Local().Format(TimestampLayout), f.ActivityCode)
	for i := 0; i < NumQuestions; i++ {
		row = append(row, f.Questions[i], f.ImageURLs[i])
	}
	return append(row, f.TeacherEmail)
}
