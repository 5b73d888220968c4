package model

import "time"

const (
	ActivitySummaryCreated = "summary_created"
	ActivityQuizGenerated  = "quiz_generated"
	ActivityHomeworkSolved = "homework_solved"
)

// ActivityEvent is an audit record of a generated artifact.
type ActivityEvent struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:128;not null;index" json:"user_id"`
	Kind      string    `gorm:"size:32;not null;index" json:"kind"`
	RefID     string    `gorm:"size:36;not null" json:"ref_id"`
	CreatedAt time.Time `json:"created_at"`
}
