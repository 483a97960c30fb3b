package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/obs"
)

// Dispatcher coordinates webhook scheduling and delivery.
type Dispatcher struct {
	Store          Store
	Client         *http.Client
	BackoffBaseSec int
	MaxAttempts    int
	Enabled        bool
	Replay         ReplayProtector
	ReplayTTL      time.Duration
}

// Schedule enqueues deliveries for active endpoints subscribed to the topic.
func (d *Dispatcher) Schedule(ctx context.Context, event dbgen.DomainEvent) error {
	if d == nil || !d.Enabled || d.Store == nil {
		return nil
	}
	if strings.TrimSpace(event.Topic) == "" {
		return nil
	}
	endpoints, err := d.Store.ListActiveEndpointsForTopic(ctx, event.Topic)
	if err != nil {
		return err
	}
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	var joined error
	for _, ep := range endpoints {
		_, err := d.Store.InsertWebhookDelivery(ctx, dbgen.InsertWebhookDeliveryParams{
			EndpointID:  ep.ID,
			EventID:     event.ID,
			Topic:       event.Topic,
			Payload:     event.Payload,
			NextAttempt: now,
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				continue
			}
			joined = errors.Join(joined, fmt.Errorf("enqueue delivery for %s: %w", uuidFrom(ep.ID), err))
		}
	}
	return joined
}

// WorkOnce pulls due deliveries and attempts each of them once.
func (d *Dispatcher) WorkOnce(ctx context.Context, batch int32) error {
	if d == nil || !d.Enabled || d.Store == nil {
		return nil
	}
	if batch <= 0 {
		batch = 1
	}
	ctx, span := otel.Tracer("notify.Dispatcher").Start(ctx, "Dispatcher.WorkOnce")
	defer span.End()
	span.SetAttributes(attribute.Int("webhook.batch", int(batch)))

	deliveries, err := d.Store.ListDueWebhookDeliveries(ctx, dbgen.ListDueWebhookDeliveriesParams{
		Now:        pgtype.Timestamptz{Time: time.Now(), Valid: true},
		LimitValue: batch,
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	for _, del := range deliveries {
		if obs.WebhookDispatchAttempts != nil {
			obs.WebhookDispatchAttempts.Inc()
		}
		attemptStart := time.Now()
		status, _, deliverErr := d.deliver(ctx, del)
		if deliverErr == nil && status >= 200 && status < 300 {
			if obs.WebhookDeliveriesTotal != nil {
				obs.WebhookDeliveriesTotal.WithLabelValues("delivered").Inc()
			}
			if obs.WebhookAttemptLatency != nil {
				obs.WebhookAttemptLatency.WithLabelValues("delivered").Observe(obs.DurationMillis(time.Since(attemptStart)))
			}
			if err := d.Store.MarkWebhookDeliverySucceeded(ctx, del.ID); err != nil {
				return err
			}
			continue
		}
		reason := fmt.Sprintf("status=%d err=%v", status, deliverErr)
		outcome := "failed"
		nextStatus := DeliveryStatusPending
		if int(del.Attempts+1) >= d.maxAttempts() {
			outcome = "dlq"
			nextStatus = DeliveryStatusDead
			if obs.WebhookDispatchDLQ != nil {
				obs.WebhookDispatchDLQ.Inc()
			}
		}
		if obs.WebhookDeliveriesTotal != nil {
			obs.WebhookDeliveriesTotal.WithLabelValues(outcome).Inc()
		}
		if obs.WebhookAttemptLatency != nil {
			obs.WebhookAttemptLatency.WithLabelValues(outcome).Observe(obs.DurationMillis(time.Since(attemptStart)))
		}
		_ = d.Store.MarkWebhookDeliveryFailed(ctx, dbgen.MarkWebhookDeliveryFailedParams{
			ID:          del.ID,
			Status:      nextStatus,
			LastError:   pgtype.Text{String: reason, Valid: true},
			NextAttempt: pgtype.Timestamptz{Time: time.Now().Add(d.nextDelay(del.Attempts)), Valid: true},
		})
	}
	return nil
}

func (d *Dispatcher) maxAttempts() int {
	if d.MaxAttempts > 0 {
		return d.MaxAttempts
	}
	return 6
}

func (d *Dispatcher) nextDelay(attempt int32) time.Duration {
	base := d.BackoffBaseSec
	if base <= 0 {
		base = 5
	}
	factor := 1 << int(attempt)
	if factor < 1 {
		factor = 1
	}
	return time.Duration(base*factor) * time.Second
}

func (d *Dispatcher) deliver(ctx context.Context, del dbgen.ListDueWebhookDeliveriesRow) (int, string, error) {
	if d.Client == nil {
		d.Client = HttpClient(5000, false)
	}
	ctx, span := otel.Tracer("notify.Dispatcher").Start(ctx, "Dispatcher.deliver")
	defer span.End()
	span.SetAttributes(
		attribute.String("webhook.endpoint_id", uuidFrom(del.EndpointID)),
		attribute.String("webhook.delivery_id", uuidFrom(del.ID)),
		attribute.String("webhook.topic", del.Topic),
	)
	if err := validateURL(del.Url); err != nil {
		span.RecordError(err)
		return 0, "", err
	}
	payload := struct {
		EventID string          `json:"eventId"`
		Topic   string          `json:"topic"`
		Data    json.RawMessage `json:"data"`
		SentAt  time.Time       `json:"sentAt"`
	}{
		EventID: uuidFrom(del.EventID),
		Topic:   del.Topic,
		Data:    json.RawMessage(del.Payload),
		SentAt:  time.Now(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		return 0, "", err
	}
	ts := time.Now().Unix()
	if d.Replay != nil && d.ReplayTTL > 0 {
		key := replayKey(del.EndpointID, del.EventID)
		ok, err := d.Replay.Acquire(ctx, key, d.ReplayTTL)
		if err != nil {
			span.RecordError(err)
			return 0, "", err
		}
		if !ok {
			span.AddEvent("delivery replay prevented")
			return http.StatusOK, "replay-suppressed", nil
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, del.Url, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "storefront-api-webhooks/1.0")
	eventID := uuidFrom(del.EventID)
	deliveryID := uuidFrom(del.ID)
	req.Header.Set("X-Event-ID", eventID)
	req.Header.Set("X-Timestamp", fmt.Sprintf("%d", ts))
	req.Header.Set("X-Idempotency-Key", deliveryID)
	req.Header.Set("X-Signature", ComputeSignature(del.Secret, ts, eventID, body))
	resp, err := d.Client.Do(req)
	if err != nil {
		span.RecordError(err)
		return 0, "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return resp.StatusCode, "", err
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	return resp.StatusCode, string(responseBody), nil
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid endpoint url: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return errors.New("webhook url must be http or https")
	}
	if parsed.Scheme == "http" {
		host := parsed.Hostname()
		if host != "localhost" && host != "127.0.0.1" {
			return errors.New("http webhook only allowed for localhost")
		}
	}
	if parsed.Host == "" {
		return errors.New("webhook url must include host")
	}
	return nil
}

// Deliver exposes the low-level delivery routine to allow manual replays and testing.
func (d *Dispatcher) Deliver(ctx context.Context, del dbgen.ListDueWebhookDeliveriesRow) (int, string, error) {
	return d.deliver(ctx, del)
}

// ComputeSignature calculates the webhook signature for the provided payload. The
// format is HMAC-SHA256 over "<ts>.<eventID>.<body>" using the endpoint secret.
func ComputeSignature(secret string, ts int64, eventID string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(strconv.FormatInt(ts, 10)))
	_, _ = mac.Write([]byte("."))
	_, _ = mac.Write([]byte(eventID))
	_, _ = mac.Write([]byte("."))
	_, _ = mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// HttpClient returns an HTTP client configured for webhook delivery.
func HttpClient(timeoutMs int, insecure bool) *http.Client {
	if timeoutMs <= 0 {
		timeoutMs = 5000
	}
	transport := &http.Transport{}
	if insecure {
		transport.TLSClientConfig = insecureTLSConfig
	}
	return &http.Client{
		Timeout:   time.Duration(timeoutMs) * time.Millisecond,
		Transport: otelhttp.NewTransport(transport),
	}
}

var insecureTLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec

// ReplayProtector guards against sending duplicate deliveries within a TTL.
type ReplayProtector interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

func replayKey(endpointID, eventID pgtype.UUID) string {
	return fmt.Sprintf("wh:%s:%s", uuidFrom(endpointID), uuidFrom(eventID))
}

func uuidFrom(value pgtype.UUID) string {
	if !value.Valid {
		return ""
	}
	id, err := uuid.FromBytes(value.Bytes[:])
	if err != nil {
		return ""
	}
	return id.String()
}
