package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"studycompanion/internal/model"
)

type HomeworkRepository struct {
	db *gorm.DB
}

func NewHomeworkRepository(db *gorm.DB) *HomeworkRepository {
	return &HomeworkRepository{db: db}
}

func (r *HomeworkRepository) Create(ctx context.Context, record *model.HomeworkRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create homework record failed: %w", err)
	}
	return nil
}

func (r *HomeworkRepository) GetByID(ctx context.Context, id string) (*model.HomeworkRecord, error) {
	var record model.HomeworkRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get homework record failed: %w", err)
	}
	return &record, nil
}

func (r *HomeworkRepository) ListByUserID(ctx context.Context, userID string) ([]model.HomeworkRecord, error) {
	var records []model.HomeworkRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list homework records failed: %w", err)
	}
	return records, nil
}
