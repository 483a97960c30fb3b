package notify

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
)

// Delivery status values persisted in webhook_deliveries.status.
const (
	DeliveryStatusPending   = "PENDING"
	DeliveryStatusSucceeded = "SUCCEEDED"
	DeliveryStatusDead      = "DEAD"
)

// Store defines the persistence operations required for webhook management.
type Store interface {
	CreateWebhookEndpoint(ctx context.Context, arg dbgen.CreateWebhookEndpointParams) (dbgen.WebhookEndpoint, error)
	UpdateWebhookEndpoint(ctx context.Context, arg dbgen.UpdateWebhookEndpointParams) (dbgen.WebhookEndpoint, error)
	DeleteWebhookEndpoint(ctx context.Context, id pgtype.UUID) (int64, error)
	ListWebhookEndpoints(ctx context.Context) ([]dbgen.WebhookEndpoint, error)
	ListActiveEndpointsForTopic(ctx context.Context, topic string) ([]dbgen.WebhookEndpoint, error)

	InsertWebhookDelivery(ctx context.Context, arg dbgen.InsertWebhookDeliveryParams) (dbgen.WebhookDelivery, error)
	ListDueWebhookDeliveries(ctx context.Context, arg dbgen.ListDueWebhookDeliveriesParams) ([]dbgen.ListDueWebhookDeliveriesRow, error)
	MarkWebhookDeliverySucceeded(ctx context.Context, id pgtype.UUID) error
	MarkWebhookDeliveryFailed(ctx context.Context, arg dbgen.MarkWebhookDeliveryFailedParams) error
	ListWebhookDeliveries(ctx context.Context, arg dbgen.ListWebhookDeliveriesParams) ([]dbgen.WebhookDelivery, error)
}

// NewStore returns a Store backed by sqlc queries.
func NewStore(q *dbgen.Queries) Store {
	if q == nil {
		return nil
	}
	return q
}
