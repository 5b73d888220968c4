package model

import (
	"time"

	"gorm.io/datatypes"
)

// Definition is a term quoted verbatim from the source material.
type Definition struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Page       string `json:"page,omitempty"`
}

// SummaryContent is the structured summary of one chunk or of a whole document.
type SummaryContent struct {
	Definitions []Definition `json:"definitions"`
	Bullets     []string     `json:"bullets"`
	Prompts     []string     `json:"prompts"`
}

type Summary struct {
	ID           string                             `gorm:"primaryKey;size:36" json:"id"`
	UserID       string                             `gorm:"size:128;not null;index" json:"user_id"`
	FileName     string                             `gorm:"size:256;not null" json:"file_name"`
	Pages        int                                `gorm:"not null" json:"pages"`
	TotalWords   int                                `gorm:"not null" json:"total_words"`
	ChunkCount   int                                `gorm:"not null" json:"chunk_count"`
	FailedChunks int                                `gorm:"not null;default:0" json:"failed_chunks"`
	Content      datatypes.JSONType[SummaryContent] `json:"summary"`
	CreatedAt    time.Time                          `gorm:"index" json:"created_at"`
}
