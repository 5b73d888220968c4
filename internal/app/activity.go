package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"studycompanion/internal/model"
	"studycompanion/internal/repository"
)

// ActivityRecorder emits audit events. Events go to the broker when one is configured and
// straight to the database otherwise, or when publishing fails. Recording never fails a request.
type ActivityRecorder struct {
	publisher ActivityPublisher
	repo      *repository.ActivityRepository
}

func NewActivityRecorder(publisher ActivityPublisher, repo *repository.ActivityRepository) *ActivityRecorder {
	return &ActivityRecorder{
		publisher: publisher,
		repo:      repo,
	}
}

func (r *ActivityRecorder) Record(ctx context.Context, userID, kind, refID string) {
	if r == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	event := model.ActivityEvent{UserID: userID, Kind: kind, RefID: refID}

	if r.publisher != nil {
		err := r.publisher.Publish(ctx, event)
		if err == nil {
			return
		}
		log.Warn().Err(err).Str("kind", kind).Msg("publish activity failed, writing directly")
	}
	if r.repo == nil {
		return
	}
	if err := r.repo.Create(ctx, &event); err != nil {
		log.Error().Err(err).Str("kind", kind).Str("user_id", userID).Msg("record activity failed")
	}
}
