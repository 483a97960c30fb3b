package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/queue"
)

// TaskKindEmail is the queue kind consumed by the worker binary for
// deferred email notifications.
const TaskKindEmail = "notify:email"

type emailTask struct {
	EventID     string          `json:"eventId"`
	Topic       string          `json:"topic"`
	AggregateID string          `json:"aggregateId"`
	Payload     json.RawMessage `json:"payload"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// QueueNotifier defers notification delivery to the background queue instead
// of sending inline with the request. The event ID doubles as the
// deduplication key so redelivered events enqueue at most once.
type QueueNotifier struct {
	Q queue.Enqueuer
}

// Notify implements the events.Notifier interface.
func (n QueueNotifier) Notify(ctx context.Context, event dbgen.DomainEvent) error {
	task := emailTask{
		EventID:     uuidFrom(event.ID),
		Topic:       event.Topic,
		AggregateID: uuidFrom(event.AggregateID),
		Payload:     json.RawMessage(event.Payload),
	}
	if event.OccurredAt.Valid {
		task.OccurredAt = event.OccurredAt.Time
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode email task: %w", err)
	}
	return n.Q.Enqueue(ctx, queue.Task{
		Kind:           TaskKindEmail,
		Payload:        payload,
		IdempotencyKey: "email:" + task.EventID,
	})
}

// EmailTaskHandler turns queued email tasks back into notifier calls. It is
// the handler the worker binary registers for TaskKindEmail.
func EmailTaskHandler(notifier EmailNotifier) func(ctx context.Context, payload []byte) error {
	return func(ctx context.Context, payload []byte) error {
		var task emailTask
		if err := json.Unmarshal(payload, &task); err != nil {
			return fmt.Errorf("decode email task: %w", err)
		}
		event := dbgen.DomainEvent{
			Topic:   task.Topic,
			Payload: []byte(task.Payload),
		}
		if id, err := parseUUID(task.EventID); err == nil {
			event.ID = id
		}
		if !task.OccurredAt.IsZero() {
			event.OccurredAt.Time = task.OccurredAt
			event.OccurredAt.Valid = true
		}
		return notifier.Notify(ctx, event)
	}
}
