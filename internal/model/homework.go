package model

import (
	"time"

	"gorm.io/datatypes"
)

type HomeworkRecord struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	UserID      string                      `gorm:"size:128;not null;index" json:"user_id"`
	Question    string                      `gorm:"type:text;not null" json:"question"`
	Topic       string                      `gorm:"size:128" json:"topic,omitempty"`
	Difficulty  string                      `gorm:"size:32" json:"difficulty,omitempty"`
	FinalAnswer string                      `gorm:"type:text" json:"final_answer"`
	Steps       datatypes.JSONSlice[string] `json:"step_by_step"`
	Tips        datatypes.JSONSlice[string] `json:"tips"`
	CreatedAt   time.Time                   `gorm:"index" json:"created_at"`
}
