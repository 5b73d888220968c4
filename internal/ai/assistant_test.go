package ai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"studycompanion/internal/model"
)

type fakeModel struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range messages {
		if msg.Role != llms.ChatMessageTypeHuman {
			continue
		}
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompts = append(m.prompts, text.Text)
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	if len(m.replies) == 0 {
		return &llms.ContentResponse{}, nil
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestSummarizeChunk(t *testing.T) {
	fake := &fakeModel{replies: []string{"```json\n" + `{
		"definitions": [{"term": " Osmosis ", "definition": "movement of water across a membrane"}, {"term": "", "definition": "x"}],
		"bullets": ["water moves", "  "],
		"prompts": ["What drives osmosis?"]
	}` + "\n```"}}
	a := NewWithModel(fake, Config{})

	got, err := a.SummarizeChunk(context.Background(), "Osmosis is the movement of water across a membrane.", "p. 2")
	if err != nil {
		t.Fatalf("SummarizeChunk failed: %v", err)
	}
	if len(got.Definitions) != 1 || got.Definitions[0].Term != "Osmosis" || got.Definitions[0].Page != "p. 2" {
		t.Errorf("unexpected definitions %+v", got.Definitions)
	}
	if len(got.Bullets) != 1 || len(got.Prompts) != 1 {
		t.Errorf("unexpected bullets/prompts %+v", got)
	}
	if len(fake.prompts) != 1 || !strings.Contains(fake.prompts[0], "p. 2") {
		t.Errorf("page label missing from prompt: %q", fake.prompts)
	}
}

func TestSummarizeChunk_Errors(t *testing.T) {
	upstream := errors.New("upstream down")
	a := NewWithModel(&fakeModel{err: upstream}, Config{})
	if _, err := a.SummarizeChunk(context.Background(), "text", ""); !errors.Is(err, upstream) {
		t.Errorf("expected upstream error, got %v", err)
	}

	a = NewWithModel(&fakeModel{replies: []string{"not json at all"}}, Config{})
	if _, err := a.SummarizeChunk(context.Background(), "text", ""); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}

	a = NewWithModel(&fakeModel{}, Config{})
	if _, err := a.SummarizeChunk(context.Background(), "text", ""); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerateQuiz(t *testing.T) {
	fake := &fakeModel{replies: []string{`Here you go: {"questions": [
		{"type": "multiple_choice", "question": "Which organelle makes ATP?", "options": ["Nucleus", "Mitochondria", "Ribosome", "Golgi"], "answer": "Mitochondria"},
		{"question": "Define osmosis.", "answer": "Diffusion of water"},
		{"type": "short_answer", "question": "   ", "answer": "skip"},
		{"type": "short_answer", "question": "Name a lipid.", "answer": "Cholesterol"}
	]}`}}
	a := NewWithModel(fake, Config{})

	questions, err := a.GenerateQuiz(context.Background(), model.SummaryContent{Bullets: []string{"cells"}}, 2)
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[1].Type != model.QuestionShortAnswer {
		t.Errorf("expected untyped question without options to become short answer, got %q", questions[1].Type)
	}
	if !strings.Contains(fake.prompts[0], "1 multiple_choice and 1 short_answer") {
		t.Errorf("unexpected prompt %q", fake.prompts[0])
	}
}

func TestQuestionMix(t *testing.T) {
	mcq, short := QuestionMix(50)
	if mcq != 35 || short != 15 {
		t.Errorf("QuestionMix(50) = %d, %d", mcq, short)
	}
}

func TestSolveHomework(t *testing.T) {
	fake := &fakeModel{replies: []string{`{"final_answer": "x = 2", "step_by_step": ["2x = 4", "divide both sides by 2"], "tips": ["check by substitution"]}`}}
	a := NewWithModel(fake, Config{})

	got, err := a.SolveHomework(context.Background(), "Solve 2x = 4", "algebra", "easy")
	if err != nil {
		t.Fatalf("SolveHomework failed: %v", err)
	}
	if got.FinalAnswer != "x = 2" || len(got.Steps) != 2 || len(got.Tips) != 1 {
		t.Errorf("unexpected solution %+v", got)
	}
	if !strings.Contains(fake.prompts[0], "Topic: algebra") {
		t.Errorf("topic missing from prompt %q", fake.prompts[0])
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := New(Config{Model: "m"}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestRateLimiterHonoursContext(t *testing.T) {
	a := NewWithModel(&fakeModel{replies: []string{`{}`, `{}`}}, Config{RequestsPerSec: 0.001, Burst: 1})
	ctx := context.Background()
	if _, err := a.SummarizeChunk(ctx, "one", ""); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := a.SummarizeChunk(cancelled, "two", ""); err == nil {
		t.Fatalf("expected rate limiter to fail on cancelled context")
	}
}
