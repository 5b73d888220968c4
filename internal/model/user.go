package model

import "time"

const (
	SubscriptionFree    = "free"
	SubscriptionPremium = "premium"
)

// User tracks usage limits for an externally authenticated identity.
type User struct {
	ID               string    `gorm:"primaryKey;size:128" json:"id"`
	SubscriptionType string    `gorm:"size:16;not null;default:free;index" json:"subscription_type"`
	QuizAttempts     int       `gorm:"not null;default:0" json:"quiz_attempts"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (u *User) IsFree() bool {
	return u.SubscriptionType == "" || u.SubscriptionType == SubscriptionFree
}
