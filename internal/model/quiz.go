package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionShortAnswer    = "short_answer"
)

type QuizQuestion struct {
	Type        string   `json:"type"`
	Question    string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

type Quiz struct {
	ID             string                            `gorm:"primaryKey;size:36" json:"id"`
	UserID         string                            `gorm:"size:128;not null;index" json:"user_id"`
	SummaryID      string                            `gorm:"size:36;not null;index" json:"summary_id"`
	Questions      datatypes.JSONSlice[QuizQuestion] `json:"questions,omitempty"`
	TotalQuestions int                               `gorm:"not null" json:"total_questions"`
	CreatedAt      time.Time                         `gorm:"index" json:"created_at"`
}

// QuizListItem is a quiz row without its question bodies.
type QuizListItem struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	SummaryID      string    `json:"summary_id"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}
