package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studycompanion/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// EnsureUser returns the user with the given id, creating a free-tier row on first sight.
func (r *UserRepository) EnsureUser(ctx context.Context, id string) (*model.User, error) {
	user := model.User{ID: id, SubscriptionType: model.SubscriptionFree}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&user).Error; err != nil {
		return nil, fmt.Errorf("ensure user failed: %w", err)
	}
	found, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("ensure user failed: user %s missing after insert", id)
	}
	return found, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) SetSubscription(ctx context.Context, id, subscription string) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("subscription_type", subscription).Error; err != nil {
		return fmt.Errorf("update subscription failed: %w", err)
	}
	return nil
}

// TryReserveAttempt increments the quiz attempt counter in a single conditional UPDATE.
// Free users are only incremented while below limit; it reports false when the row was not updated.
func (r *UserRepository) TryReserveAttempt(ctx context.Context, id string, limit int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND (subscription_type <> ? OR quiz_attempts < ?)", id, model.SubscriptionFree, limit).
		Updates(map[string]interface{}{
			"quiz_attempts": gorm.Expr("quiz_attempts + ?", 1),
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("reserve quiz attempt failed: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ReleaseAttempt gives back an attempt reserved by TryReserveAttempt.
func (r *UserRepository) ReleaseAttempt(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND quiz_attempts > 0", id).
		Updates(map[string]interface{}{
			"quiz_attempts": gorm.Expr("quiz_attempts - ?", 1),
			"updated_at":    time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("release quiz attempt failed: %w", err)
	}
	return nil
}
