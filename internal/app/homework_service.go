package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"studycompanion/internal/model"
	"studycompanion/internal/repository"
)

type HomeworkService struct {
	homeworkRepo *repository.HomeworkRepository
	assistant    StudyAssistant
	activity     *ActivityRecorder
}

type HomeworkInput struct {
	UserID     string
	Question   string
	Topic      string
	Difficulty string
}

func NewHomeworkService(homeworkRepo *repository.HomeworkRepository, assistant StudyAssistant, activity *ActivityRecorder) *HomeworkService {
	return &HomeworkService{
		homeworkRepo: homeworkRepo,
		assistant:    assistant,
		activity:     activity,
	}
}

func (s *HomeworkService) Solve(ctx context.Context, input HomeworkInput) (*model.HomeworkRecord, error) {
	userID := strings.TrimSpace(input.UserID)
	question := strings.TrimSpace(input.Question)
	if userID == "" || question == "" {
		return nil, ErrInvalidInput
	}
	if s.assistant == nil {
		return nil, ErrAssistantUnavailable
	}

	topic := strings.TrimSpace(input.Topic)
	difficulty := strings.TrimSpace(input.Difficulty)
	solution, err := s.assistant.SolveHomework(ctx, question, topic, difficulty)
	if err != nil {
		return nil, fmt.Errorf("solve homework failed: %w", err)
	}

	record := &model.HomeworkRecord{
		UserID:      userID,
		Question:    question,
		Topic:       topic,
		Difficulty:  difficulty,
		FinalAnswer: solution.FinalAnswer,
		Steps:       datatypes.JSONSlice[string](nonNil(solution.Steps)),
		Tips:        datatypes.JSONSlice[string](nonNil(solution.Tips)),
	}
	if err := s.homeworkRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	log.Info().Str("homework_id", record.ID).Str("user_id", userID).Int("steps", len(record.Steps)).Msg("homework solved")

	s.activity.Record(ctx, userID, model.ActivityHomeworkSolved, record.ID)
	return record, nil
}

func (s *HomeworkService) Get(ctx context.Context, id string) (*model.HomeworkRecord, error) {
	if !model.ValidID(id) {
		return nil, ErrInvalidID
	}
	record, err := s.homeworkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrHomeworkNotFound
	}
	return record, nil
}

func (s *HomeworkService) List(ctx context.Context, userID string) ([]model.HomeworkRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.homeworkRepo.ListByUserID(ctx, userID)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
