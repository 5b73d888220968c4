package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"studycompanion/internal/model"
	"studycompanion/internal/platform/rabbitmq"
)

type ActivityStore interface {
	Create(ctx context.Context, event *model.ActivityEvent) error
}

// ActivityPersistWorker consumes activity events from RabbitMQ and writes them to the database.
type ActivityPersistWorker struct {
	conn      *amqp.Connection
	store     ActivityStore
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewActivityPersistWorker(conn *amqp.Connection, store ActivityStore, queueName string) *ActivityPersistWorker {
	return &ActivityPersistWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
	}
}

func (w *ActivityPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(workerCtx, d.Body); err != nil {
					log.Error().Err(err).Str("queue", w.queueName).Msg("persist activity event failed")
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ActivityPersistWorker) handle(ctx context.Context, body []byte) error {
	var event model.ActivityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode activity event failed: %w", err)
	}
	if event.UserID == "" || event.Kind == "" {
		return fmt.Errorf("activity event is missing user or kind")
	}
	return w.store.Create(ctx, &event)
}

func (w *ActivityPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
