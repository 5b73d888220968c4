package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"studycompanion/internal/model"
	"studycompanion/internal/pkg/chunking"
	"studycompanion/internal/pkg/pdfextract"
	"studycompanion/internal/pkg/pdfextract/pdftest"
)

func threePagePDF(t *testing.T) string {
	t.Helper()
	return pdftest.WriteFile(t, []string{
		pdftest.Words("p1", 1500),
		pdftest.Words("p2", 1500),
		pdftest.Words("p3", 1500),
	})
}

func TestSummarize_ThreePageDocument(t *testing.T) {
	ctx := context.Background()
	assistant := &fakeAssistant{}
	env := newTestEnv(t, assistant)

	summary, err := env.summaryService.Summarize(ctx, SummarizeInput{
		UserID:   "student",
		FileName: "biology.pdf",
		Path:     threePagePDF(t),
	})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if summary.Pages != 3 || summary.TotalWords != 4500 || summary.ChunkCount != 3 || summary.FailedChunks != 0 {
		t.Errorf("unexpected summary metadata %+v", summary)
	}

	content := summary.Content.Data()
	if want := []string{"p1w0", "p2w300", "p3w600"}; !reflect.DeepEqual(content.Bullets, want) {
		t.Errorf("bullets = %v, want %v", content.Bullets, want)
	}
	if len(content.Definitions) != 1 || content.Definitions[0].Page != "p. 1" {
		t.Errorf("expected first definition to win, got %+v", content.Definitions)
	}
	if len(content.Prompts) != 3 {
		t.Errorf("expected 3 prompts, got %d", len(content.Prompts))
	}

	labels := strings.Join(assistant.labels, ",")
	for _, want := range []string{"p. 1", "p. 2", "p. 3"} {
		if !strings.Contains(labels, want) {
			t.Errorf("page label %q never sent, got %q", want, labels)
		}
	}

	stored, err := env.summaryService.Get(ctx, summary.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(stored.Content.Data().Bullets, content.Bullets) {
		t.Errorf("stored summary differs from returned summary")
	}

	events, _ := env.activity.ListByUserID(ctx, "student")
	if len(events) != 1 || events[0].Kind != model.ActivitySummaryCreated || events[0].RefID != summary.ID {
		t.Errorf("unexpected activity %+v", events)
	}
}

func TestSummarize_SkipsFailedChunks(t *testing.T) {
	assistant := &fakeAssistant{
		summarize: func(text, label string) (model.SummaryContent, error) {
			if strings.HasPrefix(text, "p2w300") {
				return model.SummaryContent{}, context.DeadlineExceeded
			}
			return firstWordSummary(text, label), nil
		},
	}
	env := newTestEnv(t, assistant)

	summary, err := env.summaryService.Summarize(context.Background(), SummarizeInput{
		UserID:   "student",
		FileName: "biology.pdf",
		Path:     threePagePDF(t),
	})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.FailedChunks != 1 {
		t.Errorf("expected 1 failed chunk, got %d", summary.FailedChunks)
	}
	if want := []string{"p1w0", "p3w600"}; !reflect.DeepEqual(summary.Content.Data().Bullets, want) {
		t.Errorf("bullets = %v, want %v", summary.Content.Data().Bullets, want)
	}
}

func TestSummarize_AllChunksFail(t *testing.T) {
	ctx := context.Background()
	assistant := &fakeAssistant{
		summarize: func(string, string) (model.SummaryContent, error) {
			return model.SummaryContent{}, errors.New("model overloaded")
		},
	}
	env := newTestEnv(t, assistant)

	_, err := env.summaryService.Summarize(ctx, SummarizeInput{UserID: "student", FileName: "a.pdf", Path: threePagePDF(t)})
	if !errors.Is(err, ErrNoSummariesProduced) {
		t.Fatalf("expected ErrNoSummariesProduced, got %v", err)
	}
	if list, _ := env.summaryService.List(ctx, "student"); len(list) != 0 {
		t.Errorf("expected nothing persisted, got %d summaries", len(list))
	}
}

func TestSummarize_BlankDocumentProducesNothing(t *testing.T) {
	env := newTestEnv(t, &fakeAssistant{})
	path := pdftest.WriteFile(t, []string{"  ", " "})

	_, err := env.summaryService.Summarize(context.Background(), SummarizeInput{UserID: "s", FileName: "blank.pdf", Path: path})
	if !errors.Is(err, ErrNoSummariesProduced) {
		t.Fatalf("expected ErrNoSummariesProduced, got %v", err)
	}
}

func TestSummarize_ExtractionError(t *testing.T) {
	env := newTestEnv(t, &fakeAssistant{})
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("plain text"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := env.summaryService.Summarize(context.Background(), SummarizeInput{UserID: "s", FileName: "fake.pdf", Path: path})
	var extractErr *pdfextract.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestNewSummaryService_RejectsInvalidChunkConfiguration(t *testing.T) {
	env := newTestEnv(t, &fakeAssistant{})

	cases := []PipelineOptions{
		{ChunkSize: 10, ChunkOverlap: 10},
		{ChunkSize: 100, ChunkOverlap: 150},
		{ChunkSize: -5, ChunkOverlap: 1},
	}
	for _, opts := range cases {
		svc, err := NewSummaryService(env.summaries, &fakeAssistant{}, nil, nil, opts)
		if !errors.Is(err, chunking.ErrInvalidConfiguration) {
			t.Errorf("options %+v: expected ErrInvalidConfiguration, got %v", opts, err)
		}
		if svc != nil {
			t.Errorf("options %+v: expected no service", opts)
		}
	}

	svc, err := NewSummaryService(env.summaries, &fakeAssistant{}, nil, nil, PipelineOptions{})
	if err != nil {
		t.Fatalf("default options rejected: %v", err)
	}
	if svc.chunker.Size != chunking.DefaultSize || svc.chunker.Overlap != chunking.DefaultOverlap {
		t.Errorf("unexpected default chunker %+v", svc.chunker)
	}
}

func TestSummarize_Validation(t *testing.T) {
	env := newTestEnv(t, &fakeAssistant{})
	if _, err := env.summaryService.Summarize(context.Background(), SummarizeInput{FileName: "a.pdf", Path: "/tmp/a.pdf"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	noAI := newTestEnv(t, nil)
	if _, err := noAI.summaryService.Summarize(context.Background(), SummarizeInput{UserID: "s", FileName: "a.pdf", Path: "/tmp/a.pdf"}); !errors.Is(err, ErrAssistantUnavailable) {
		t.Errorf("expected ErrAssistantUnavailable, got %v", err)
	}
}

func TestSummaryGet_Errors(t *testing.T) {
	env := newTestEnv(t, &fakeAssistant{})
	if _, err := env.summaryService.Get(context.Background(), "not-an-id"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
	if _, err := env.summaryService.Get(context.Background(), "00000000-0000-4000-8000-000000000000"); !errors.Is(err, ErrSummaryNotFound) {
		t.Errorf("expected ErrSummaryNotFound, got %v", err)
	}
}
