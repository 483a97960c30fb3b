package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/ecomjrm/storefront-api/internal/common"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/user"
)

type fakeAddressStore struct {
	rows       map[string]dbgen.Address
	listParams dbgen.ListAddressesByUserParams
	unsets     int
}

func newFakeAddressStore() *fakeAddressStore {
	return &fakeAddressStore{rows: make(map[string]dbgen.Address)}
}

func (f *fakeAddressStore) ListAddressesByUser(_ context.Context, arg dbgen.ListAddressesByUserParams) ([]dbgen.Address, error) {
	f.listParams = arg
	out := make([]dbgen.Address, 0, len(f.rows))
	for _, row := range f.rows {
		if row.UserID == arg.UserID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAddressStore) CountAddressesByUser(_ context.Context, userID pgtype.UUID) (int64, error) {
	var n int64
	for _, row := range f.rows {
		if row.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeAddressStore) CreateAddress(_ context.Context, arg dbgen.CreateAddressParams) (dbgen.Address, error) {
	row := dbgen.Address{
		ID:           pgtype.UUID{Bytes: uuid.New(), Valid: true},
		UserID:       arg.UserID,
		Label:        arg.Label,
		ReceiverName: arg.ReceiverName,
		Phone:        arg.Phone,
		Line1:        arg.Line1,
		Line2:        arg.Line2,
		City:         arg.City,
		State:        arg.State,
		Postcode:     arg.Postcode,
		IsDefault:    arg.IsDefault,
		CreatedAt:    pgtype.Timestamptz{Time: time.Now(), Valid: true},
		UpdatedAt:    pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	f.rows[uuid.UUID(row.ID.Bytes).String()] = row
	return row, nil
}

func (f *fakeAddressStore) GetAddressByID(_ context.Context, arg dbgen.GetAddressByIDParams) (dbgen.Address, error) {
	row, ok := f.rows[uuid.UUID(arg.ID.Bytes).String()]
	if !ok || row.UserID != arg.UserID {
		return dbgen.Address{}, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeAddressStore) UpdateAddress(_ context.Context, arg dbgen.UpdateAddressParams) (dbgen.Address, error) {
	key := uuid.UUID(arg.ID.Bytes).String()
	row, ok := f.rows[key]
	if !ok || row.UserID != arg.UserID {
		return dbgen.Address{}, pgx.ErrNoRows
	}
	row.Label = arg.Label
	row.ReceiverName = arg.ReceiverName
	row.Phone = arg.Phone
	row.Line1 = arg.Line1
	row.Line2 = arg.Line2
	row.City = arg.City
	row.State = arg.State
	row.Postcode = arg.Postcode
	row.IsDefault = arg.IsDefault
	f.rows[key] = row
	return row, nil
}

func (f *fakeAddressStore) DeleteAddress(_ context.Context, arg dbgen.DeleteAddressParams) (int64, error) {
	key := uuid.UUID(arg.ID.Bytes).String()
	row, ok := f.rows[key]
	if !ok || row.UserID != arg.UserID {
		return 0, nil
	}
	delete(f.rows, key)
	return 1, nil
}

func (f *fakeAddressStore) UnsetDefaultAddresses(_ context.Context, userID pgtype.UUID) error {
	f.unsets++
	for key, row := range f.rows {
		if row.UserID == userID && row.IsDefault {
			row.IsDefault = false
			f.rows[key] = row
		}
	}
	return nil
}

func validInput() user.AddressInput {
	return user.AddressInput{
		ReceiverName: "Nur Aisyah",
		Phone:        "012-345 6789",
		Line1:        "12, Jalan SS15/4",
		City:         "Subang Jaya",
		State:        "selangor",
		Postcode:     "47500",
	}
}

func TestCreateNormalisesMalaysianFields(t *testing.T) {
	t.Parallel()

	store := newFakeAddressStore()
	svc := user.NewService(store)

	created, err := svc.Create(context.Background(), uuid.NewString(), validInput())
	require.NoError(t, err)
	require.Equal(t, "Selangor", created.State)
	require.Equal(t, "0123456789", created.Phone)
	require.Equal(t, "47500", created.Postcode)
}

func TestCreateRejectsBadPostcodeAndState(t *testing.T) {
	t.Parallel()

	svc := user.NewService(newFakeAddressStore())
	userID := uuid.NewString()

	in := validInput()
	in.Postcode = "4750"
	_, err := svc.Create(context.Background(), userID, in)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)

	in = validInput()
	in.State = "Jakarta"
	_, err = svc.Create(context.Background(), userID, in)
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)

	in = validInput()
	in.Phone = "12345"
	_, err = svc.Create(context.Background(), userID, in)
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCreateDefaultDemotesPrevious(t *testing.T) {
	t.Parallel()

	store := newFakeAddressStore()
	svc := user.NewService(store)
	userID := uuid.NewString()

	first := validInput()
	first.IsDefault = true
	created, err := svc.Create(context.Background(), userID, first)
	require.NoError(t, err)
	require.True(t, created.IsDefault)

	second := validInput()
	second.Line1 = "88, Jalan Tun Razak"
	second.City = "Kuala Lumpur"
	second.State = "kuala lumpur"
	second.Postcode = "50400"
	second.IsDefault = true
	replacement, err := svc.Create(context.Background(), userID, second)
	require.NoError(t, err)
	require.True(t, replacement.IsDefault)

	addresses, total, err := svc.List(context.Background(), userID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			require.Equal(t, replacement.ID, a.ID)
		}
	}
	require.Equal(t, 1, defaults)
}

func TestListPaginationOffsets(t *testing.T) {
	t.Parallel()

	store := newFakeAddressStore()
	svc := user.NewService(store)

	_, _, err := svc.List(context.Background(), uuid.NewString(), 3, 10)
	require.NoError(t, err)
	require.EqualValues(t, 10, store.listParams.Limit)
	require.EqualValues(t, 20, store.listParams.Offset)
}

func TestUpdateUnknownAddress(t *testing.T) {
	t.Parallel()

	svc := user.NewService(newFakeAddressStore())
	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), validInput())
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestDeleteOnlyOwnAddress(t *testing.T) {
	t.Parallel()

	store := newFakeAddressStore()
	svc := user.NewService(store)
	owner := uuid.NewString()

	created, err := svc.Create(context.Background(), owner, validInput())
	require.NoError(t, err)

	var appErr *common.AppError
	err = svc.Delete(context.Background(), uuid.NewString(), created.ID)
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "NOT_FOUND", appErr.Code)

	require.NoError(t, svc.Delete(context.Background(), owner, created.ID))
	require.Error(t, svc.Delete(context.Background(), owner, created.ID))
}

func TestUnauthorizedUserID(t *testing.T) {
	t.Parallel()

	svc := user.NewService(newFakeAddressStore())
	_, _, err := svc.List(context.Background(), "not-a-uuid", 1, 10)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "UNAUTHORIZED", appErr.Code)
}
