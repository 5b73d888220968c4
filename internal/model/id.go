package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID fills an empty string primary key with a random UUID.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// ValidID reports whether s has the shape of an identifier assigned by this store.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}

func (s *Summary) BeforeCreate(*gorm.DB) error {
	newID(&s.ID)
	return nil
}

func (q *Quiz) BeforeCreate(*gorm.DB) error {
	newID(&q.ID)
	return nil
}

func (h *HomeworkRecord) BeforeCreate(*gorm.DB) error {
	newID(&h.ID)
	return nil
}

func (e *ActivityEvent) BeforeCreate(*gorm.DB) error {
	newID(&e.ID)
	return nil
}
