package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SubmissionColumns is the width of a submitted row: timestamp, activity
// code, three question/image pairs and the teacher e-mail.
const SubmissionColumns = 9

// SubmissionRecord is a stored question set.
type SubmissionRecord struct {
	ID           int
	Sequence     int64
	CreatedAt    time.Time
	SubmittedAt  string
	ActivityCode string
	Questions    [3]string
	ImageURLs    [3]string
	TeacherEmail string
}

// Row returns the record in submission column order.
func (r SubmissionRecord) Row() []string {
	return []string{
		r.SubmittedAt, r.ActivityCode,
		r.Questions[0], r.ImageURLs[0],
		r.Questions[1], r.ImageURLs[1],
		r.Questions[2], r.ImageURLs[2],
		r.TeacherEmail,
	}
}

// SubmissionQuery filters ListSubmissions.
type SubmissionQuery struct {
	Limit        int    // max results (0 = unlimited)
	ActivityCode string // exact match (empty = any)
}

// SubmissionRepo stores submitted rows. Rows are only ever appended.
type SubmissionRepo interface {
	// AppendRow stores one row laid out as SubmissionColumns strings.
	AppendRow(ctx context.Context, row []string) error

	// ListSubmissions returns rows newest first.
	ListSubmissions(ctx context.Context, q SubmissionQuery) ([]SubmissionRecord, error)
}

type submissionRepo struct {
	db  *gorm.DB
	seq *sequenceCounter
}

func (r *submissionRepo) AppendRow(ctx context.Context, row []string) error {
	if len(row) != SubmissionColumns {
		return fmt.Errorf("submission row has %d columns, want %d", len(row), SubmissionColumns)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	sub := submission{
		Sequence:     seqNum,
		SubmittedAt:  row[0],
		ActivityCode: row[1],
		Question1:    row[2],
		ImageURL1:    row[3],
		Question2:    row[4],
		ImageURL2:    row[5],
		Question3:    row[6],
		ImageURL3:    row[7],
		TeacherEmail: row[8],
	}
	if err := r.db.WithContext(ctx).Create(&sub).Error; err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

func (r *submissionRepo) ListSubmissions(ctx context.Context, q SubmissionQuery) ([]SubmissionRecord, error) {
	tx := r.db.WithContext(ctx).Model(&submission{})
	if q.ActivityCode != "" {
		tx = tx.Where("activity_code = ?", q.ActivityCode)
	}
	tx = tx.Order("sequence DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []submission
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}

	out := make([]SubmissionRecord, len(rows))
	for i, row := range rows {
		out[i] = row.record()
	}
	return out, nil
}
