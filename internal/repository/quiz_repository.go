package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"studycompanion/internal/model"
)

type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	if err := r.db.WithContext(ctx).Create(quiz).Error; err != nil {
		return fmt.Errorf("create quiz failed: %w", err)
	}
	return nil
}

func (r *QuizRepository) GetByID(ctx context.Context, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quiz failed: %w", err)
	}
	return &quiz, nil
}

// ListByUserID returns the user's quizzes without loading question bodies.
func (r *QuizRepository) ListByUserID(ctx context.Context, userID string) ([]model.QuizListItem, error) {
	var items []model.QuizListItem
	if err := r.db.WithContext(ctx).Model(&model.Quiz{}).
		Select("id", "user_id", "summary_id", "total_questions", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list quizzes failed: %w", err)
	}
	return items, nil
}
