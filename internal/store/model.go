package store

import "time"

// llmRequestEvent is the gorm model for one recorded provider call.
type llmRequestEvent struct {
	ID           int    `gorm:"primaryKey"`
	Sequence     int64  `gorm:"not null;uniqueIndex"`
	Timestamp    int64  `gorm:"not null"` // unix millis
	Provider     string `gorm:"not null"`
	Model        string `gorm:"not null"`
	Purpose      string `gorm:"not null;index"`
	InputTokens  int    `gorm:"not null;default:0"`
	OutputTokens int    `gorm:"not null;default:0"`
	LatencyMs    int64  `gorm:"not null;default:0"`
	Success      bool   `gorm:"not null"`
	ErrorMessage string `gorm:"type:text;not null;default:''"`
	RequestBody  string `gorm:"type:text;not null;default:''"`
	ResponseBody string `gorm:"type:text;not null;default:''"`
}

func (llmRequestEvent) TableName() string { return "llm_request_events" }

// submission is the gorm model for one submitted question set.
type submission struct {
	ID           int    `gorm:"primaryKey"`
	Sequence     int64  `gorm:"not null;uniqueIndex"`
	CreatedAt    int64  `gorm:"not null;autoCreateTime:milli"`
	SubmittedAt  string `gorm:"not null"`
	ActivityCode string `gorm:"not null;index"`
	Question1    string `gorm:"column:question1;type:text;not null"`
	ImageURL1    string `gorm:"column:image_url1;not null;default:''"`
	Question2    string `gorm:"column:question2;type:text;not null"`
	ImageURL2    string `gorm:"column:image_url2;not null;default:''"`
	Question3    string `gorm:"column:question3;type:text;not null"`
	ImageURL3    string `gorm:"column:image_url3;not null;default:''"`
	TeacherEmail string `gorm:"not null;default:''"`
}

func (submission) TableName() string { return "submissions" }

func (m submission) record() SubmissionRecord {
	return SubmissionRecord{
		ID:           m.ID,
		Sequence:     m.Sequence,
		CreatedAt:    time.UnixMilli(m.CreatedAt),
		SubmittedAt:  m.SubmittedAt,
		ActivityCode: m.ActivityCode,
		Questions:    [3]string{m.Question1, m.Question2, m.Question3},
		ImageURLs:    [3]string{m.ImageURL1, m.ImageURL2, m.ImageURL3},
		TeacherEmail: m.TeacherEmail,
	}
}

func (m llmRequestEvent) record() LLMEventRecord {
	return LLMEventRecord{
		ID:        m.ID,
		Sequence:  m.Sequence,
		Timestamp: time.UnixMilli(m.Timestamp),
		LLMRequestEventData: LLMRequestEventData{
			Provider:     m.Provider,
			Model:        m.Model,
			Purpose:      m.Purpose,
			InputTokens:  m.InputTokens,
			OutputTokens: m.OutputTokens,
			LatencyMs:    m.LatencyMs,
			Success:      m.Success,
			ErrorMessage: m.ErrorMessage,
			RequestBody:  m.RequestBody,
			ResponseBody: m.ResponseBody,
		},
	}
}
