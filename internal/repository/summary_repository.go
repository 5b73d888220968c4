package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"studycompanion/internal/model"
)

type SummaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) Create(ctx context.Context, summary *model.Summary) error {
	if err := r.db.WithContext(ctx).Create(summary).Error; err != nil {
		return fmt.Errorf("create summary failed: %w", err)
	}
	return nil
}

func (r *SummaryRepository) GetByID(ctx context.Context, id string) (*model.Summary, error) {
	var summary model.Summary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get summary failed: %w", err)
	}
	return &summary, nil
}

func (r *SummaryRepository) ListByUserID(ctx context.Context, userID string) ([]model.Summary, error) {
	var summaries []model.Summary
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("list summaries failed: %w", err)
	}
	return summaries, nil
}
