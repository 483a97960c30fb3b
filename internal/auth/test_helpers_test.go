package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
)

// fakeQueries is an in-memory stand-in for the generated store, covering the
// user, session, and password-reset queries the auth service touches. The
// embedded interface satisfies the rest of dbgen.Querier; calling anything
// outside the auth surface panics, which is exactly what a test should do.
type fakeQueries struct {
	dbgen.Querier

	mu              sync.Mutex
	usersByEmail    map[string]dbgen.User
	usersByID       map[string]dbgen.User
	sessionsByToken map[string]dbgen.Session
	sessionsByID    map[string]dbgen.Session
	resetsByToken   map[string]dbgen.PasswordReset
}

func newFakeQueries() *fakeQueries {
	return &fakeQueries{
		usersByEmail:    make(map[string]dbgen.User),
		usersByID:       make(map[string]dbgen.User),
		sessionsByToken: make(map[string]dbgen.Session),
		sessionsByID:    make(map[string]dbgen.Session),
		resetsByToken:   make(map[string]dbgen.PasswordReset),
	}
}

func (f *fakeQueries) CreateUser(ctx context.Context, arg dbgen.CreateUserParams) (dbgen.CreateUserRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	pgID, err := pgUUIDFromString(id.String())
	if err != nil {
		return dbgen.CreateUserRow{}, err
	}
	now := pgTimestamp(time.Now())
	user := dbgen.User{
		ID:           pgID,
		Name:         arg.Name,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		Phone:        arg.Phone,
		Roles:        []string{"customer"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.usersByEmail[arg.Email] = user
	f.usersByID[id.String()] = user
	return dbgen.CreateUserRow{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func (f *fakeQueries) GetUserByEmail(ctx context.Context, email string) (dbgen.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.usersByEmail[email]
	if !ok {
		return dbgen.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeQueries) GetUserByID(ctx context.Context, id pgtype.UUID) (dbgen.GetUserByIDRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.usersByID[uuidString(id)]
	if !ok {
		return dbgen.GetUserByIDRow{}, pgx.ErrNoRows
	}
	return dbgen.GetUserByIDRow{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		Roles:       user.Roles,
		IsMember:    user.IsMember,
		MemberSince: user.MemberSince,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}, nil
}

func (f *fakeQueries) UpdateUserPassword(ctx context.Context, arg dbgen.UpdateUserPasswordParams) (pgtype.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := uuidString(arg.ID)
	user, ok := f.usersByID[key]
	if !ok {
		return pgtype.UUID{}, pgx.ErrNoRows
	}
	user.PasswordHash = arg.PasswordHash
	f.usersByID[key] = user
	f.usersByEmail[user.Email] = user
	return user.ID, nil
}

func (f *fakeQueries) CreateSession(ctx context.Context, arg dbgen.CreateSessionParams) (dbgen.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	pgID, err := pgUUIDFromString(id.String())
	if err != nil {
		return dbgen.Session{}, err
	}
	session := dbgen.Session{
		ID:        pgID,
		UserID:    arg.UserID,
		TokenHash: arg.TokenHash,
		UserAgent: arg.UserAgent,
		Ip:        arg.Ip,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: pgTimestamp(time.Now()),
	}
	f.sessionsByToken[arg.TokenHash] = session
	f.sessionsByID[id.String()] = session
	return session, nil
}

func (f *fakeQueries) GetSessionByToken(ctx context.Context, tokenHash string) (dbgen.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessionsByToken[tokenHash]
	if !ok {
		return dbgen.Session{}, pgx.ErrNoRows
	}
	return session, nil
}

func (f *fakeQueries) UpdateSessionToken(ctx context.Context, arg dbgen.UpdateSessionTokenParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := uuidString(arg.ID)
	session, ok := f.sessionsByID[key]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(f.sessionsByToken, session.TokenHash)
	session.TokenHash = arg.TokenHash
	session.ExpiresAt = arg.ExpiresAt
	f.sessionsByID[key] = session
	f.sessionsByToken[arg.TokenHash] = session
	return nil
}

func (f *fakeQueries) DeleteSessionByToken(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session, ok := f.sessionsByToken[tokenHash]; ok {
		delete(f.sessionsByID, uuidString(session.ID))
		delete(f.sessionsByToken, tokenHash)
	}
	return nil
}

func (f *fakeQueries) DeleteSessionsForUser(ctx context.Context, userID pgtype.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	target := uuidString(userID)
	for token, session := range f.sessionsByToken {
		if uuidString(session.UserID) == target {
			delete(f.sessionsByID, uuidString(session.ID))
			delete(f.sessionsByToken, token)
		}
	}
	return nil
}

func (f *fakeQueries) CreatePasswordReset(ctx context.Context, arg dbgen.CreatePasswordResetParams) (dbgen.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	pgID, err := pgUUIDFromString(id.String())
	if err != nil {
		return dbgen.PasswordReset{}, err
	}
	reset := dbgen.PasswordReset{
		ID:        pgID,
		UserID:    arg.UserID,
		Token:     arg.Token,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: pgTimestamp(time.Now()),
	}
	f.resetsByToken[arg.Token] = reset
	return reset, nil
}

func (f *fakeQueries) GetPasswordResetByToken(ctx context.Context, token string) (dbgen.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reset, ok := f.resetsByToken[token]
	if !ok {
		return dbgen.PasswordReset{}, pgx.ErrNoRows
	}
	return reset, nil
}

func (f *fakeQueries) UsePasswordReset(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	reset, ok := f.resetsByToken[token]
	if !ok {
		return pgx.ErrNoRows
	}
	reset.UsedAt = pgTimestamp(time.Now())
	f.resetsByToken[token] = reset
	return nil
}

func (f *fakeQueries) DeletePasswordResetsForUser(ctx context.Context, userID pgtype.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	target := uuidString(userID)
	for token, reset := range f.resetsByToken {
		if uuidString(reset.UserID) == target {
			delete(f.resetsByToken, token)
		}
	}
	return nil
}
