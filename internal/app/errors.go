package app

import (
	"errors"

	"studycompanion/internal/pkg/pagination"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidID            = errors.New("invalid id")
	ErrInvalidPage          = pagination.ErrInvalidPage
	ErrSummaryNotFound      = errors.New("summary not found")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrHomeworkNotFound     = errors.New("homework record not found")
	ErrQuotaExceeded        = errors.New("quiz attempt limit reached, upgrade to premium to generate more quizzes")
	ErrNoSummariesProduced  = errors.New("failed to summarize any chunk")
	ErrAssistantUnavailable = errors.New("ai assistant is not configured")
)
