package audit

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ecomjrm/storefront-api/internal/common"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/obs"
)

// ActorKind classifies who performed an audited action.
type ActorKind string

const (
	// ActorKindUser is an authenticated customer or administrator.
	ActorKindUser ActorKind = "user"
	// ActorKindSystem is an internal job, e.g. membership activation.
	ActorKindSystem ActorKind = "system"
	// ActorKindAnonymous is an unauthenticated caller.
	ActorKindAnonymous ActorKind = "anonymous"
)

// Actor is the subject of an audit entry.
type Actor struct {
	Kind   ActorKind
	UserID *string
}

// Store defines the database operations required for auditing.
type Store interface {
	InsertAuditLog(ctx context.Context, arg dbgen.InsertAuditLogParams) (dbgen.InsertAuditLogRow, error)
	ListAuditLogs(ctx context.Context, arg dbgen.ListAuditLogsParams) ([]dbgen.AuditLog, error)
}

// Service writes the back-office audit trail: admin catalog and content
// mutations, order status changes, membership settings updates and the
// system-side membership activations. SamplingRate below 1 drops a share of
// entries, which keeps high-volume routes affordable.
type Service struct {
	Store        Store
	Enabled      bool
	SamplingRate float64
}

// entry is the normalised form of one audit row before insertion.
type entry struct {
	actor      Actor
	action     string
	resource   string
	resourceID string
	method     string
	path       string
	route      string
	status     int
	ip         string
	userAgent  string
	requestID  string
	metadata   []byte
}

// Record captures one audited request. Empty action and resourceType fall
// back to values derived from the route, so ad-hoc call sites stay cheap.
func (s Service) Record(ctx context.Context, actor Actor, action, resourceType, resourceID string, req *http.Request, status int, metadata []byte) error {
	if !s.Enabled {
		return nil
	}
	if s.SamplingRate > 0 && s.SamplingRate < 1 && rand.Float64() > s.SamplingRate {
		return nil
	}
	if req == nil {
		return errors.New("audit: request is required")
	}
	if s.Store == nil {
		return errors.New("audit: store not configured")
	}

	e := s.buildEntry(actor, action, resourceType, resourceID, req, status, metadata)
	_, err := s.Store.InsertAuditLog(ctx, dbgen.InsertAuditLogParams{
		ActorKind:    string(e.actor.Kind),
		ActorUserID:  actorUUID(e.actor),
		Action:       e.action,
		ResourceType: e.resource,
		ResourceID:   textOrNull(e.resourceID),
		Method:       e.method,
		Path:         e.path,
		Route:        textOrNull(e.route),
		Status:       int32(e.status),
		Ip:           textOrNull(e.ip),
		UserAgent:    textOrNull(e.userAgent),
		RequestID:    textOrNull(e.requestID),
		Metadata:     e.metadata,
	})
	return err
}

func (s Service) buildEntry(actor Actor, action, resourceType, resourceID string, req *http.Request, status int, metadata []byte) entry {
	route := obs.RoutePatternFromContext(req.Context())
	if route == "" {
		route = strings.TrimSpace(req.URL.Path)
	}
	if status == 0 {
		status = http.StatusOK
	}
	switch actor.Kind {
	case ActorKindUser, ActorKindSystem:
	default:
		actor.Kind = ActorKindAnonymous
	}
	return entry{
		actor:      actor,
		action:     fallbackAction(action, req.Method, route),
		resource:   fallbackResource(resourceType, route),
		resourceID: strings.TrimSpace(resourceID),
		method:     req.Method,
		path:       req.URL.Path,
		route:      route,
		status:     status,
		ip:         common.ClientIP(req),
		userAgent:  req.Header.Get("User-Agent"),
		requestID:  req.Header.Get("X-Request-ID"),
		metadata:   redactMetadata(metadata, req.URL.RawQuery),
	}
}

// fallbackAction derives "POST /api/v1/admin/products" style actions for call
// sites that did not name one.
func fallbackAction(action, method, route string) string {
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		return trimmed
	}
	if route == "" {
		route = "/"
	}
	return strings.ToUpper(strings.TrimSpace(method)) + " " + route
}

// fallbackResource turns /api/v1/admin/products/{id} into admin.products.{id}
// when the call site did not name a resource type.
func fallbackResource(resourceType, route string) string {
	if trimmed := strings.TrimSpace(resourceType); trimmed != "" {
		return trimmed
	}
	trimmed := strings.Trim(route, "/ ")
	if trimmed == "" {
		return "unknown"
	}
	segments := strings.Split(trimmed, "/")
	if len(segments) >= 3 && segments[0] == "api" && segments[1] == "v1" {
		segments = segments[2:]
	}
	return strings.Join(segments, ".")
}

// sensitiveKeys are masked in recorded metadata. Audit rows are readable by
// every administrator, so credentials and tokens must never land in them.
var sensitiveKeys = map[string]bool{
	"password":      true,
	"password_hash": true,
	"token":         true,
	"secret":        true,
	"refresh_token": true,
}

func redactMetadata(metadata []byte, rawQuery string) []byte {
	if len(metadata) == 0 {
		if strings.TrimSpace(rawQuery) == "" {
			return nil
		}
		data, err := json.Marshal(map[string]string{"query": rawQuery})
		if err != nil {
			return nil
		}
		return data
	}
	var decoded map[string]any
	if err := json.Unmarshal(metadata, &decoded); err != nil {
		// Not a JSON object; store as-is.
		return metadata
	}
	changed := false
	for key := range decoded {
		if sensitiveKeys[strings.ToLower(key)] {
			decoded[key] = "[redacted]"
			changed = true
		}
	}
	if !changed {
		return metadata
	}
	data, err := json.Marshal(decoded)
	if err != nil {
		return metadata
	}
	return data
}

func actorUUID(a Actor) pgtype.UUID {
	if a.UserID == nil {
		return pgtype.UUID{}
	}
	parsed, err := uuid.Parse(strings.TrimSpace(*a.UserID))
	if err != nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

func textOrNull(value string) pgtype.Text {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: trimmed, Valid: true}
}
