package notify_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/notify"
)

func toUUID(u uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: u, Valid: true}
}

func uuidString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

type fakeStore struct {
	endpoints []dbgen.WebhookEndpoint
	due       []dbgen.ListDueWebhookDeliveriesRow
	inserted  []dbgen.InsertWebhookDeliveryParams
	insertErr []error
	succeeded []pgtype.UUID
	failed    []dbgen.MarkWebhookDeliveryFailedParams
}

func (f *fakeStore) CreateWebhookEndpoint(context.Context, dbgen.CreateWebhookEndpointParams) (dbgen.WebhookEndpoint, error) {
	return dbgen.WebhookEndpoint{}, errors.New("not implemented")
}

func (f *fakeStore) UpdateWebhookEndpoint(context.Context, dbgen.UpdateWebhookEndpointParams) (dbgen.WebhookEndpoint, error) {
	return dbgen.WebhookEndpoint{}, errors.New("not implemented")
}

func (f *fakeStore) DeleteWebhookEndpoint(context.Context, pgtype.UUID) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeStore) ListWebhookEndpoints(context.Context) ([]dbgen.WebhookEndpoint, error) {
	return f.endpoints, nil
}

func (f *fakeStore) ListActiveEndpointsForTopic(context.Context, string) ([]dbgen.WebhookEndpoint, error) {
	return f.endpoints, nil
}

func (f *fakeStore) InsertWebhookDelivery(_ context.Context, arg dbgen.InsertWebhookDeliveryParams) (dbgen.WebhookDelivery, error) {
	idx := len(f.inserted)
	f.inserted = append(f.inserted, arg)
	if idx < len(f.insertErr) && f.insertErr[idx] != nil {
		return dbgen.WebhookDelivery{}, f.insertErr[idx]
	}
	return dbgen.WebhookDelivery{ID: toUUID(uuid.New())}, nil
}

func (f *fakeStore) ListDueWebhookDeliveries(context.Context, dbgen.ListDueWebhookDeliveriesParams) ([]dbgen.ListDueWebhookDeliveriesRow, error) {
	due := f.due
	f.due = nil
	return due, nil
}

func (f *fakeStore) MarkWebhookDeliverySucceeded(_ context.Context, id pgtype.UUID) error {
	f.succeeded = append(f.succeeded, id)
	return nil
}

func (f *fakeStore) MarkWebhookDeliveryFailed(_ context.Context, arg dbgen.MarkWebhookDeliveryFailedParams) error {
	f.failed = append(f.failed, arg)
	return nil
}

func (f *fakeStore) ListWebhookDeliveries(context.Context, dbgen.ListWebhookDeliveriesParams) ([]dbgen.WebhookDelivery, error) {
	return nil, nil
}

func TestSignatureAndHeaders(t *testing.T) {
	type recorded struct {
		req  *http.Request
		body []byte
	}
	received := make(chan recorded, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- recorded{req: r, body: body}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	dispatcher := &notify.Dispatcher{Client: srv.Client(), Enabled: true}
	delivery := dbgen.ListDueWebhookDeliveriesRow{
		ID:         toUUID(uuid.New()),
		EndpointID: toUUID(uuid.New()),
		EventID:    toUUID(uuid.New()),
		Topic:      "order.paid",
		Payload:    []byte(`{"id":1}`),
		Url:        srv.URL,
		Secret:     "secret",
	}

	status, _, err := dispatcher.Deliver(context.Background(), delivery)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	record := <-received
	req := record.req
	require.Equal(t, "application/json", req.Header.Get("Content-Type"))
	require.Equal(t, uuidString(delivery.EventID), req.Header.Get("X-Event-ID"))
	require.Equal(t, uuidString(delivery.ID), req.Header.Get("X-Idempotency-Key"))
	timestamp := req.Header.Get("X-Timestamp")
	require.NotEmpty(t, timestamp)
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	require.NoError(t, err)
	require.Equal(t, notify.ComputeSignature(delivery.Secret, ts, req.Header.Get("X-Event-ID"), record.body), req.Header.Get("X-Signature"))
}

func TestRetryThenDead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	firstAttempt := dbgen.ListDueWebhookDeliveriesRow{
		ID:         toUUID(uuid.New()),
		EndpointID: toUUID(uuid.New()),
		EventID:    toUUID(uuid.New()),
		Topic:      "order.paid",
		Payload:    []byte(`{"id":1}`),
		Attempts:   0,
		Url:        srv.URL,
		Secret:     "secret",
	}
	store := &fakeStore{due: []dbgen.ListDueWebhookDeliveriesRow{firstAttempt}}

	dispatcher := &notify.Dispatcher{
		Store:          store,
		Client:         srv.Client(),
		BackoffBaseSec: 3,
		MaxAttempts:    2,
		Enabled:        true,
	}

	before := time.Now()
	require.NoError(t, dispatcher.WorkOnce(context.Background(), 1))
	require.Len(t, store.failed, 1)
	require.Equal(t, notify.DeliveryStatusPending, store.failed[0].Status)
	require.True(t, store.failed[0].NextAttempt.Time.After(before.Add(2*time.Second)))

	secondAttempt := firstAttempt
	secondAttempt.Attempts = 1
	store.due = []dbgen.ListDueWebhookDeliveriesRow{secondAttempt}

	require.NoError(t, dispatcher.WorkOnce(context.Background(), 1))
	require.Len(t, store.failed, 2)
	require.Equal(t, notify.DeliveryStatusDead, store.failed[1].Status)
	require.Empty(t, store.succeeded)
}

func TestScheduleSkipsDuplicateDeliveries(t *testing.T) {
	store := &fakeStore{
		endpoints: []dbgen.WebhookEndpoint{{ID: toUUID(uuid.New())}, {ID: toUUID(uuid.New())}},
		insertErr: []error{&pgconn.PgError{Code: "23505"}, nil},
	}
	dispatcher := &notify.Dispatcher{Store: store, Enabled: true}
	event := dbgen.DomainEvent{ID: toUUID(uuid.New()), Topic: "order.created", Payload: []byte(`{"id":1}`)}

	require.NoError(t, dispatcher.Schedule(context.Background(), event))
	require.Len(t, store.inserted, 2)
	require.Equal(t, "order.created", store.inserted[0].Topic)
}
