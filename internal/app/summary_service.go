package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"studycompanion/internal/model"
	"studycompanion/internal/pkg/chunking"
	"studycompanion/internal/pkg/pdfextract"
	"studycompanion/internal/pkg/summarymerge"
	"studycompanion/internal/repository"
)

type PipelineOptions struct {
	ChunkSize    int
	ChunkOverlap int
	Concurrency  int
	ChunkTimeout time.Duration
}

type SummaryService struct {
	summaryRepo *repository.SummaryRepository
	assistant   StudyAssistant
	cache       ArtifactCache
	activity    *ActivityRecorder
	extractor   *pdfextract.Extractor
	chunker     *chunking.Chunker
	concurrency int
	timeout     time.Duration
}

type SummarizeInput struct {
	UserID   string
	FileName string
	Path     string
}

func NewSummaryService(
	summaryRepo *repository.SummaryRepository,
	assistant StudyAssistant,
	cache ArtifactCache,
	activity *ActivityRecorder,
	opts PipelineOptions,
) (*SummaryService, error) {
	if opts.ChunkSize == 0 && opts.ChunkOverlap == 0 {
		opts.ChunkSize = chunking.DefaultSize
		opts.ChunkOverlap = chunking.DefaultOverlap
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.ChunkTimeout <= 0 {
		opts.ChunkTimeout = 60 * time.Second
	}
	chunker, err := chunking.New(opts.ChunkSize, opts.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	return &SummaryService{
		summaryRepo: summaryRepo,
		assistant:   assistant,
		cache:       cache,
		activity:    activity,
		extractor:   pdfextract.NewExtractor(),
		chunker:     chunker,
		concurrency: opts.Concurrency,
		timeout:     opts.ChunkTimeout,
	}, nil
}

// Summarize runs the PDF pipeline: extract, chunk, summarize every chunk, merge and persist.
// Chunks that fail to summarize are skipped; the call fails only when none succeeds.
func (s *SummaryService) Summarize(ctx context.Context, input SummarizeInput) (*model.Summary, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" || input.Path == "" || strings.TrimSpace(input.FileName) == "" {
		return nil, ErrInvalidInput
	}
	if s.assistant == nil {
		return nil, ErrAssistantUnavailable
	}

	doc, err := s.extractor.Extract(input.Path)
	if err != nil {
		return nil, err
	}
	chunks, err := s.chunker.Split(doc.Text, doc.PageTexts)
	if err != nil {
		return nil, err
	}

	logger := log.With().Str("user_id", userID).Str("file", input.FileName).Logger()
	logger.Info().Int("pages", doc.Pages).Int("words", doc.WordCount()).Int("chunks", len(chunks)).Msg("pdf extracted")

	parts, failed, err := s.summarizeChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, ErrNoSummariesProduced
	}

	summary := &model.Summary{
		UserID:       userID,
		FileName:     input.FileName,
		Pages:        doc.Pages,
		TotalWords:   doc.WordCount(),
		ChunkCount:   len(chunks),
		FailedChunks: failed,
		Content:      datatypes.NewJSONType(summarymerge.Merge(parts)),
	}
	if err := s.summaryRepo.Create(ctx, summary); err != nil {
		return nil, err
	}
	logger.Info().Str("summary_id", summary.ID).Int("failed_chunks", failed).Msg("summary saved")

	s.cacheSummary(ctx, summary)
	s.activity.Record(ctx, userID, model.ActivitySummaryCreated, summary.ID)
	return summary, nil
}

type chunkResult struct {
	content model.SummaryContent
	err     error
}

// summarizeChunks fans chunks out to the assistant and returns the successful summaries in chunk
// order together with the number of failures.
func (s *SummaryService) summarizeChunks(ctx context.Context, chunks []chunking.Chunk) ([]model.SummaryContent, int, error) {
	results := make([]chunkResult, len(chunks))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			chunkCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			content, err := s.assistant.SummarizeChunk(chunkCtx, chunk.Text, chunk.PageLabel())
			results[i] = chunkResult{content: content, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("summarize chunks failed: %w", err)
	}

	parts := make([]model.SummaryContent, 0, len(chunks))
	failed := 0
	for i, res := range results {
		if res.err != nil {
			failed++
			log.Warn().Err(res.err).
				Int("chunk", i).
				Int("of", len(chunks)).
				Bool("timeout", errors.Is(res.err, context.DeadlineExceeded)).
				Msg("chunk summary failed, skipping")
			continue
		}
		parts = append(parts, res.content)
	}
	return parts, failed, nil
}

func (s *SummaryService) Get(ctx context.Context, id string) (*model.Summary, error) {
	if !model.ValidID(id) {
		return nil, ErrInvalidID
	}
	if s.cache != nil {
		cached, ok, err := s.cache.GetSummary(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("summary_id", id).Msg("summary cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	summary, err := s.summaryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, ErrSummaryNotFound
	}
	s.cacheSummary(ctx, summary)
	return summary, nil
}

func (s *SummaryService) List(ctx context.Context, userID string) ([]model.Summary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.summaryRepo.ListByUserID(ctx, userID)
}

func (s *SummaryService) cacheSummary(ctx context.Context, summary *model.Summary) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetSummary(ctx, summary); err != nil {
		log.Warn().Err(err).Str("summary_id", summary.ID).Msg("summary cache write failed")
	}
}
