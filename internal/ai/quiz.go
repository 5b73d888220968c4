package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"studycompanion/internal/model"
)

const quizSystemPrompt = `You write exam practice questions from study summaries.
Reply with a single JSON object of the form:
{"questions":[{"type":"multiple_choice","question":"...","options":["A","B","C","D"],"answer":"...","explanation":"..."},
{"type":"short_answer","question":"...","answer":"...","explanation":"..."}]}
Multiple choice questions have exactly four options and the answer is one of them.`

// QuestionMix splits n questions into multiple choice and short answer counts, 70/30.
func QuestionMix(n int) (multipleChoice, shortAnswer int) {
	multipleChoice = n * 7 / 10
	return multipleChoice, n - multipleChoice
}

// GenerateQuiz asks for n questions about summary. The model may return fewer; callers decide
// whether that is acceptable.
func (a *Assistant) GenerateQuiz(ctx context.Context, summary model.SummaryContent, n int) ([]model.QuizQuestion, error) {
	if n <= 0 {
		return nil, fmt.Errorf("question count %d must be positive", n)
	}
	material, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary failed: %w", err)
	}

	mcq, short := QuestionMix(n)
	user := fmt.Sprintf(
		"Write %d questions: %d multiple_choice and %d short_answer.\n\nSummary:\n%s",
		n, mcq, short, material,
	)

	raw, err := a.complete(ctx, quizSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Questions []model.QuizQuestion `json:"questions"`
	}
	if err := decodeJSON(raw, &parsed); err != nil {
		return nil, err
	}

	questions := make([]model.QuizQuestion, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			continue
		}
		if q.Type != model.QuestionMultipleChoice && q.Type != model.QuestionShortAnswer {
			if len(q.Options) > 0 {
				q.Type = model.QuestionMultipleChoice
			} else {
				q.Type = model.QuestionShortAnswer
			}
		}
		questions = append(questions, q)
		if len(questions) == n {
			break
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in reply", ErrMalformedResponse)
	}
	return questions, nil
}
