package user

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ecomjrm/storefront-api/internal/common"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
)

// Store is the slice of the generated queries the address book needs.
type Store interface {
	ListAddressesByUser(ctx context.Context, arg dbgen.ListAddressesByUserParams) ([]dbgen.Address, error)
	CountAddressesByUser(ctx context.Context, userID pgtype.UUID) (int64, error)
	CreateAddress(ctx context.Context, arg dbgen.CreateAddressParams) (dbgen.Address, error)
	GetAddressByID(ctx context.Context, arg dbgen.GetAddressByIDParams) (dbgen.Address, error)
	UpdateAddress(ctx context.Context, arg dbgen.UpdateAddressParams) (dbgen.Address, error)
	DeleteAddress(ctx context.Context, arg dbgen.DeleteAddressParams) (int64, error)
	UnsetDefaultAddresses(ctx context.Context, userID pgtype.UUID) error
}

// Address is the API shape of a delivery address. The storefront ships within
// Malaysia only, so there is no country field; state must be one of the
// thirteen states or three federal territories.
type Address struct {
	ID           string    `json:"id"`
	Label        string    `json:"label,omitempty"`
	ReceiverName string    `json:"receiver_name"`
	Phone        string    `json:"phone"`
	Line1        string    `json:"line1"`
	Line2        string    `json:"line2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Postcode     string    `json:"postcode"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AddressInput carries a create or update payload before validation.
type AddressInput struct {
	Label        string
	ReceiverName string
	Phone        string
	Line1        string
	Line2        string
	City         string
	State        string
	Postcode     string
	IsDefault    bool
}

// Service owns the authenticated user's address book.
type Service struct {
	Q Store
}

// NewService wires the address book over the generated query layer.
func NewService(q Store) *Service {
	return &Service{Q: q}
}

// canonical state names, keyed by their lowercase form for matching.
var malaysianStates = map[string]string{
	"johor":           "Johor",
	"kedah":           "Kedah",
	"kelantan":        "Kelantan",
	"melaka":          "Melaka",
	"negeri sembilan": "Negeri Sembilan",
	"pahang":          "Pahang",
	"perak":           "Perak",
	"perlis":          "Perlis",
	"pulau pinang":    "Pulau Pinang",
	"sabah":           "Sabah",
	"sarawak":         "Sarawak",
	"selangor":        "Selangor",
	"terengganu":      "Terengganu",
	"kuala lumpur":    "Kuala Lumpur",
	"labuan":          "Labuan",
	"putrajaya":       "Putrajaya",
}

// List returns one page of the user's addresses, default entry first.
func (s *Service) List(ctx context.Context, userID string, page, perPage int) ([]Address, int64, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, 0, err
	}
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	rows, err := s.Q.ListAddressesByUser(ctx, dbgen.ListAddressesByUserParams{
		UserID: uid,
		Limit:  int32(perPage),
		Offset: int32((page - 1) * perPage),
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Q.CountAddressesByUser(ctx, uid)
	if err != nil {
		return nil, 0, err
	}
	addresses := make([]Address, 0, len(rows))
	for _, row := range rows {
		addresses = append(addresses, fromRow(row))
	}
	return addresses, total, nil
}

// Create validates and stores a new address. Marking it default demotes the
// previous default first.
func (s *Service) Create(ctx context.Context, userID string, in AddressInput) (Address, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return Address{}, err
	}
	cleaned, err := validate(in)
	if err != nil {
		return Address{}, err
	}
	if cleaned.IsDefault {
		if err := s.Q.UnsetDefaultAddresses(ctx, uid); err != nil {
			return Address{}, err
		}
	}
	created, err := s.Q.CreateAddress(ctx, dbgen.CreateAddressParams{
		UserID:       uid,
		Label:        optionalText(cleaned.Label),
		ReceiverName: cleaned.ReceiverName,
		Phone:        cleaned.Phone,
		Line1:        cleaned.Line1,
		Line2:        optionalText(cleaned.Line2),
		City:         cleaned.City,
		State:        cleaned.State,
		Postcode:     cleaned.Postcode,
		IsDefault:    cleaned.IsDefault,
	})
	if err != nil {
		return Address{}, err
	}
	return fromRow(created), nil
}

// Update replaces an existing address owned by the user.
func (s *Service) Update(ctx context.Context, userID, addressID string, in AddressInput) (Address, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return Address{}, err
	}
	aid, err := parseAddressID(addressID)
	if err != nil {
		return Address{}, err
	}
	cleaned, err := validate(in)
	if err != nil {
		return Address{}, err
	}
	if _, err := s.Q.GetAddressByID(ctx, dbgen.GetAddressByIDParams{ID: aid, UserID: uid}); err != nil {
		return Address{}, mapNotFound(err)
	}
	if cleaned.IsDefault {
		// Demote every default; the update below re-flags this one.
		if err := s.Q.UnsetDefaultAddresses(ctx, uid); err != nil {
			return Address{}, err
		}
	}
	updated, err := s.Q.UpdateAddress(ctx, dbgen.UpdateAddressParams{
		ID:           aid,
		UserID:       uid,
		Label:        optionalText(cleaned.Label),
		ReceiverName: cleaned.ReceiverName,
		Phone:        cleaned.Phone,
		Line1:        cleaned.Line1,
		Line2:        optionalText(cleaned.Line2),
		City:         cleaned.City,
		State:        cleaned.State,
		Postcode:     cleaned.Postcode,
		IsDefault:    cleaned.IsDefault,
	})
	if err != nil {
		return Address{}, mapNotFound(err)
	}
	return fromRow(updated), nil
}

// Delete removes an address owned by the user.
func (s *Service) Delete(ctx context.Context, userID, addressID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}
	aid, err := parseAddressID(addressID)
	if err != nil {
		return err
	}
	rows, err := s.Q.DeleteAddress(ctx, dbgen.DeleteAddressParams{ID: aid, UserID: uid})
	if err != nil {
		return err
	}
	if rows == 0 {
		return common.NewAppError("NOT_FOUND", "address not found", http.StatusNotFound, nil)
	}
	return nil
}

func validate(in AddressInput) (AddressInput, error) {
	out := AddressInput{
		Label:        strings.TrimSpace(in.Label),
		ReceiverName: strings.TrimSpace(in.ReceiverName),
		Phone:        normalizePhone(in.Phone),
		Line1:        strings.TrimSpace(in.Line1),
		Line2:        strings.TrimSpace(in.Line2),
		City:         strings.TrimSpace(in.City),
		Postcode:     strings.TrimSpace(in.Postcode),
		IsDefault:    in.IsDefault,
	}
	if out.ReceiverName == "" {
		return out, invalid("receiver_name is required")
	}
	if out.Phone == "" {
		return out, invalid("phone must be a Malaysian number, e.g. 012-3456789 or +60123456789")
	}
	if out.Line1 == "" {
		return out, invalid("line1 is required")
	}
	if out.City == "" {
		return out, invalid("city is required")
	}
	state, ok := malaysianStates[strings.ToLower(strings.TrimSpace(in.State))]
	if !ok {
		return out, invalid("state must be a Malaysian state or federal territory")
	}
	out.State = state
	if !validPostcode(out.Postcode) {
		return out, invalid("postcode must be 5 digits")
	}
	return out, nil
}

// normalizePhone strips separators and accepts 0- or +60-prefixed Malaysian
// numbers. Returns the compact form, or "" when the input does not look like
// a phone number.
func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-':
		default:
			return ""
		}
	}
	num := b.String()
	switch {
	case strings.HasPrefix(num, "+60") && len(num) >= 11:
		return num
	case strings.HasPrefix(num, "0") && len(num) >= 9:
		return num
	default:
		return ""
	}
}

func validPostcode(code string) bool {
	if len(code) != 5 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

func invalid(msg string) error {
	return common.NewAppError("VALIDATION_ERROR", msg, http.StatusBadRequest, nil)
}

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NewAppError("NOT_FOUND", "address not found", http.StatusNotFound, nil)
	}
	return err
}

func parseUserID(value string) (pgtype.UUID, error) {
	id, err := parseUUID(value)
	if err != nil {
		return pgtype.UUID{}, common.NewAppError("UNAUTHORIZED", "unauthorized", http.StatusUnauthorized, nil)
	}
	return id, nil
}

func parseAddressID(value string) (pgtype.UUID, error) {
	id, err := parseUUID(value)
	if err != nil {
		return pgtype.UUID{}, common.NewAppError("NOT_FOUND", "address not found", http.StatusNotFound, nil)
	}
	return id, nil
}

func parseUUID(value string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func fromRow(row dbgen.Address) Address {
	return Address{
		ID:           uuid.UUID(row.ID.Bytes).String(),
		Label:        row.Label.String,
		ReceiverName: row.ReceiverName,
		Phone:        row.Phone,
		Line1:        row.Line1,
		Line2:        row.Line2.String,
		City:         row.City,
		State:        row.State,
		Postcode:     row.Postcode,
		IsDefault:    row.IsDefault,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

func optionalText(value string) pgtype.Text {
	if value == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: value, Valid: true}
}
