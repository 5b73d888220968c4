package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"studycompanion/internal/model"
	"studycompanion/internal/pkg/pagination"
	"studycompanion/internal/repository"
)

type QuizService struct {
	quizRepo         *repository.QuizRepository
	userRepo         *repository.UserRepository
	summaries        *SummaryService
	assistant        StudyAssistant
	cache            ArtifactCache
	activity         *ActivityRecorder
	numQuestions     int
	freeAttemptLimit int
}

type GenerateQuizInput struct {
	UserID    string
	SummaryID string
}

type QuizPage struct {
	QuizID         string               `json:"quiz_id"`
	UserID         string               `json:"user_id"`
	Page           int                  `json:"page"`
	TotalPages     int                  `json:"total_pages"`
	TotalQuestions int                  `json:"total_questions"`
	Questions      []model.QuizQuestion `json:"questions"`
}

type Usage struct {
	UserID           string `json:"user_id"`
	SubscriptionType string `json:"subscription_type"`
	QuizAttempts     int    `json:"quiz_attempts"`
	// Limit and Remaining are nil for unlimited subscriptions.
	Limit     *int `json:"quiz_attempt_limit"`
	Remaining *int `json:"remaining_attempts"`
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	userRepo *repository.UserRepository,
	summaries *SummaryService,
	assistant StudyAssistant,
	cache ArtifactCache,
	activity *ActivityRecorder,
	numQuestions int,
	freeAttemptLimit int,
) *QuizService {
	if numQuestions <= 0 {
		numQuestions = 50
	}
	if freeAttemptLimit < 0 {
		freeAttemptLimit = 0
	}
	return &QuizService{
		quizRepo:         quizRepo,
		userRepo:         userRepo,
		summaries:        summaries,
		assistant:        assistant,
		cache:            cache,
		activity:         activity,
		numQuestions:     numQuestions,
		freeAttemptLimit: freeAttemptLimit,
	}
}

// Generate creates a quiz from a stored summary. An attempt is reserved before the assistant is
// called and given back if generation or persistence fails, so the counter only reflects quizzes
// that were actually created.
func (s *QuizService) Generate(ctx context.Context, input GenerateQuizInput) (*model.Quiz, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	if !model.ValidID(input.SummaryID) {
		return nil, ErrInvalidID
	}
	if s.assistant == nil {
		return nil, ErrAssistantUnavailable
	}

	summary, err := s.summaries.Get(ctx, input.SummaryID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.EnsureUser(ctx, userID); err != nil {
		return nil, err
	}
	reserved, err := s.userRepo.TryReserveAttempt(ctx, userID, s.freeAttemptLimit)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, ErrQuotaExceeded
	}

	quiz, err := s.create(ctx, userID, summary)
	if err != nil {
		if releaseErr := s.userRepo.ReleaseAttempt(context.WithoutCancel(ctx), userID); releaseErr != nil {
			log.Error().Err(releaseErr).Str("user_id", userID).Msg("release quiz attempt failed")
		}
		return nil, err
	}

	s.cacheQuiz(ctx, quiz)
	s.activity.Record(ctx, userID, model.ActivityQuizGenerated, quiz.ID)
	return quiz, nil
}

func (s *QuizService) create(ctx context.Context, userID string, summary *model.Summary) (*model.Quiz, error) {
	start := time.Now()
	questions, err := s.assistant.GenerateQuiz(ctx, summary.Content.Data(), s.numQuestions)
	if err != nil {
		return nil, fmt.Errorf("generate quiz failed: %w", err)
	}
	if len(questions) < s.numQuestions {
		log.Warn().Int("got", len(questions)).Int("want", s.numQuestions).Str("summary_id", summary.ID).
			Msg("assistant returned fewer questions than requested")
	}

	quiz := &model.Quiz{
		UserID:         userID,
		SummaryID:      summary.ID,
		Questions:      datatypes.JSONSlice[model.QuizQuestion](questions),
		TotalQuestions: len(questions),
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	log.Info().Str("quiz_id", quiz.ID).Int("questions", len(questions)).Dur("elapsed", time.Since(start)).Msg("quiz generated")
	return quiz, nil
}

func (s *QuizService) GetPage(ctx context.Context, quizID string, page int) (*QuizPage, error) {
	if !model.ValidID(quizID) {
		return nil, ErrInvalidID
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1", ErrInvalidInput)
	}

	quiz, err := s.get(ctx, quizID)
	if err != nil {
		return nil, err
	}

	window, err := pagination.Paginate(len(quiz.Questions), pagination.QuizPageSize, page)
	if err != nil {
		return nil, err
	}
	return &QuizPage{
		QuizID:         quiz.ID,
		UserID:         quiz.UserID,
		Page:           window.Page,
		TotalPages:     window.TotalPages,
		TotalQuestions: len(quiz.Questions),
		Questions:      quiz.Questions[window.Start:window.End],
	}, nil
}

func (s *QuizService) List(ctx context.Context, userID string) ([]model.QuizListItem, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.quizRepo.ListByUserID(ctx, userID)
}

// Usage reports quiz attempts for userID. Unknown users are reported as fresh free accounts.
func (s *QuizService) Usage(ctx context.Context, userID string) (*Usage, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &model.User{ID: userID, SubscriptionType: model.SubscriptionFree}
	}

	usage := &Usage{
		UserID:           user.ID,
		SubscriptionType: user.SubscriptionType,
		QuizAttempts:     user.QuizAttempts,
	}
	if user.IsFree() {
		limit := s.freeAttemptLimit
		remaining := max(limit-user.QuizAttempts, 0)
		usage.Limit = &limit
		usage.Remaining = &remaining
	}
	return usage, nil
}

// SetSubscription moves userID to the given plan, creating the user when needed. Existing attempts
// are kept, so a user downgraded to free may already be at the limit.
func (s *QuizService) SetSubscription(ctx context.Context, userID, subscription string) (*Usage, error) {
	userID = strings.TrimSpace(userID)
	subscription = strings.ToLower(strings.TrimSpace(subscription))
	if userID == "" {
		return nil, ErrInvalidInput
	}
	if subscription != model.SubscriptionFree && subscription != model.SubscriptionPremium {
		return nil, fmt.Errorf("%w: unknown subscription type %q", ErrInvalidInput, subscription)
	}

	if _, err := s.userRepo.EnsureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.SetSubscription(ctx, userID, subscription); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", userID).Str("subscription", subscription).Msg("subscription updated")
	return s.Usage(ctx, userID)
}

// TotalPages is the number of pages quiz is served in.
func TotalPages(quiz *model.Quiz) int {
	return pagination.TotalPages(quiz.TotalQuestions, pagination.QuizPageSize)
}

func (s *QuizService) get(ctx context.Context, id string) (*model.Quiz, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetQuiz(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("quiz_id", id).Msg("quiz cache read failed")
		} else if ok {
			return cached, nil
		}
	}
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}
	s.cacheQuiz(ctx, quiz)
	return quiz, nil
}

func (s *QuizService) cacheQuiz(ctx context.Context, quiz *model.Quiz) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetQuiz(ctx, quiz); err != nil {
		log.Warn().Err(err).Str("quiz_id", quiz.ID).Msg("quiz cache write failed")
	}
}
