package app

import (
	"context"

	"studycompanion/internal/ai"
	"studycompanion/internal/model"
)

// StudyAssistant is the AI collaborator behind summaries, quizzes and homework help.
type StudyAssistant interface {
	SummarizeChunk(ctx context.Context, text, pageLabel string) (model.SummaryContent, error)
	GenerateQuiz(ctx context.Context, summary model.SummaryContent, n int) ([]model.QuizQuestion, error)
	SolveHomework(ctx context.Context, question, topic, difficulty string) (*ai.HomeworkSolution, error)
}

type ArtifactCache interface {
	GetSummary(ctx context.Context, id string) (*model.Summary, bool, error)
	SetSummary(ctx context.Context, summary *model.Summary) error
	GetQuiz(ctx context.Context, id string) (*model.Quiz, bool, error)
	SetQuiz(ctx context.Context, quiz *model.Quiz) error
}

type ActivityPublisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}
