package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"studycompanion/internal/model"
)

// ArtifactCache is a read-through cache for immutable artifacts. Summaries and quizzes never
// change after creation, so entries only expire.
type ArtifactCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewArtifactCache(client *redisv9.Client, ttl time.Duration) *ArtifactCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ArtifactCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ArtifactCache) GetSummary(ctx context.Context, id string) (*model.Summary, bool, error) {
	var summary model.Summary
	ok, err := c.get(ctx, summaryKey(id), &summary)
	if err != nil || !ok {
		return nil, false, err
	}
	return &summary, true, nil
}

func (c *ArtifactCache) SetSummary(ctx context.Context, summary *model.Summary) error {
	return c.set(ctx, summaryKey(summary.ID), summary)
}

func (c *ArtifactCache) GetQuiz(ctx context.Context, id string) (*model.Quiz, bool, error) {
	var quiz model.Quiz
	ok, err := c.get(ctx, quizKey(id), &quiz)
	if err != nil || !ok {
		return nil, false, err
	}
	return &quiz, true, nil
}

func (c *ArtifactCache) SetQuiz(ctx context.Context, quiz *model.Quiz) error {
	return c.set(ctx, quizKey(quiz.ID), quiz)
}

func (c *ArtifactCache) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s failed: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("unmarshal cached %s failed: %w", key, err)
	}
	return true, nil
}

func (c *ArtifactCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s failed: %w", key, err)
	}
	return nil
}

func summaryKey(id string) string {
	return "study:summary:" + id
}

func quizKey(id string) string {
	return "study:quiz:" + id
}
