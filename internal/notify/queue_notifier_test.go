package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/events"
	"github.com/ecomjrm/storefront-api/internal/notify"
	"github.com/ecomjrm/storefront-api/internal/queue"
)

type captureMailer struct {
	mu       sync.Mutex
	to       []string
	subjects []string
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	m.subjects = append(m.subjects, subject)
	return nil
}

func TestQueueNotifierDeliversThroughWorker(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	enq := queue.Enqueuer{R: client, Prefix: "qn", DedupTTL: time.Minute}
	notifier := notify.QueueNotifier{Q: enq}

	event := dbgen.DomainEvent{
		ID:          toUUID(uuid.New()),
		AggregateID: toUUID(uuid.New()),
		Topic:       events.TopicOrderPaid,
		Payload:     []byte(`{"email":"aina@example.my","orderId":"ord-1"}`),
		OccurredAt:  pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, notifier.Notify(ctx, event))
	// Redelivery of the same event must not enqueue a second task.
	require.NoError(t, notifier.Notify(ctx, event))

	queued, err := client.ZCard(ctx, "qn:queue:"+notify.TaskKindEmail).Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), queued)

	mailer := &captureMailer{}
	handler := notify.EmailTaskHandler(notify.EmailNotifier{Mail: mailer, Enabled: true})

	worker := queue.Worker{
		R:                 client,
		Prefix:            "qn",
		Kind:              notify.TaskKindEmail,
		Concurrency:       1,
		VisibilityTimeout: time.Second,
		RetryBase:         10 * time.Millisecond,
		Handler: func(ctx context.Context, task queue.Task) error {
			defer cancel()
			return handler(ctx, task.Payload)
		},
	}

	go func() { _ = worker.Run(ctx) }()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not process email task in time")
	}

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Equal(t, []string{"aina@example.my"}, mailer.to)
	require.Equal(t, []string{"Pembayaran berjaya"}, mailer.subjects)
}

func TestEmailTaskHandlerRejectsMalformedPayload(t *testing.T) {
	t.Parallel()

	handler := notify.EmailTaskHandler(notify.EmailNotifier{Mail: &captureMailer{}, Enabled: true})
	require.Error(t, handler(context.Background(), []byte("not-json")))
}
