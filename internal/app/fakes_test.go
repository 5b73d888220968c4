package app

import (
	"context"
	"strings"
	"sync"
	"testing"

	"studycompanion/internal/ai"
	"studycompanion/internal/model"
	"studycompanion/internal/repository"
	"studycompanion/internal/repository/repotest"
)

type fakeAssistant struct {
	mu sync.Mutex

	summarize func(text, pageLabel string) (model.SummaryContent, error)
	quiz      func(n int) ([]model.QuizQuestion, error)
	homework  func(question string) (*ai.HomeworkSolution, error)

	labels []string
}

func (f *fakeAssistant) SummarizeChunk(_ context.Context, text, pageLabel string) (model.SummaryContent, error) {
	f.mu.Lock()
	f.labels = append(f.labels, pageLabel)
	f.mu.Unlock()
	if f.summarize != nil {
		return f.summarize(text, pageLabel)
	}
	return firstWordSummary(text, pageLabel), nil
}

func (f *fakeAssistant) GenerateQuiz(_ context.Context, _ model.SummaryContent, n int) ([]model.QuizQuestion, error) {
	if f.quiz != nil {
		return f.quiz(n)
	}
	return makeQuestions(n), nil
}

func (f *fakeAssistant) SolveHomework(_ context.Context, question, _, _ string) (*ai.HomeworkSolution, error) {
	if f.homework != nil {
		return f.homework(question)
	}
	return &ai.HomeworkSolution{FinalAnswer: "42", Steps: []string{"think"}, Tips: []string{"review"}}, nil
}

// firstWordSummary tags each chunk summary with the chunk's first word so merge order is visible.
func firstWordSummary(text, pageLabel string) model.SummaryContent {
	first := strings.Fields(text)[0]
	return model.SummaryContent{
		Definitions: []model.Definition{{Term: "shared", Definition: "repeated in every chunk", Page: pageLabel}},
		Bullets:     []string{first},
		Prompts:     []string{"What comes after " + first + "?"},
	}
}

func makeQuestions(n int) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, n)
	for i := range questions {
		questions[i] = model.QuizQuestion{Type: model.QuestionShortAnswer, Question: "q", Answer: "a"}
	}
	return questions
}

type testEnv struct {
	users     *repository.UserRepository
	summaries *repository.SummaryRepository
	activity  *repository.ActivityRepository

	summaryService  *SummaryService
	quizService     *QuizService
	homeworkService *HomeworkService
}

func newTestEnv(t *testing.T, assistant StudyAssistant) *testEnv {
	t.Helper()
	db := repotest.Open(t)
	env := &testEnv{
		users:     repository.NewUserRepository(db),
		summaries: repository.NewSummaryRepository(db),
		activity:  repository.NewActivityRepository(db),
	}
	recorder := NewActivityRecorder(nil, env.activity)
	summaryService, err := NewSummaryService(env.summaries, assistant, nil, recorder, PipelineOptions{
		ChunkSize:    2000,
		ChunkOverlap: 200,
		Concurrency:  3,
	})
	if err != nil {
		t.Fatalf("NewSummaryService failed: %v", err)
	}
	env.summaryService = summaryService
	env.quizService = NewQuizService(repository.NewQuizRepository(db), env.users, env.summaryService, assistant, nil, recorder, 50, 2)
	env.homeworkService = NewHomeworkService(repository.NewHomeworkRepository(db), assistant, recorder)
	return env
}
