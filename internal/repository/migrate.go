package repository

import (
	"fmt"

	"gorm.io/gorm"

	"studycompanion/internal/model"
)

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Summary{},
		&model.Quiz{},
		&model.HomeworkRecord{},
		&model.ActivityEvent{},
	); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}
	return nil
}
