package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/essabriabdelghani/chatbot-gemini/internal/common"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/auth"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/config"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/models"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/repositories/accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

// fakeAccountsRepo is an in-memory accounts.Repository keyed by normalized
// email, mirroring the database unique constraint.
type fakeAccountsRepo struct {
	byEmail map[string]*models.Account
	byID    map[string]*models.Account
	nextID  int

	failWith error
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{
		byEmail: make(map[string]*models.Account),
		byID:    make(map[string]*models.Account),
	}
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	email := accounts.NormalizeEmail(a.Email)
	if _, ok := f.byEmail[email]; ok {
		return nil, common.ErrorEmailExists
	}
	f.nextID++
	a.ID = fmt.Sprintf("acc-%d", f.nextID)
	a.Email = email
	a.CreatedAt = time.Now()
	f.byEmail[email] = a
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeAccountsRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	a, ok := f.byEmail[accounts.NormalizeEmail(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *fakeAccountsRepo) FindByID(ctx context.Context, id string) (*models.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func newService(repo accounts.Repository) *AccountService {
	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
	}
	return NewAccountService(repo, cfg)
}

// --- tests ---

func TestRegisterThenLogin(t *testing.T) {
	svc := newService(newFakeAccountsRepo())
	ctx := context.Background()

	account, token, err := svc.Register(ctx, "Ana", "Ana@X.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "ana@x.com", account.Email)
	assert.Equal(t, common.DefaultAvatar, account.Avatar)
	assert.NotEqual(t, "secret1", account.PasswordHash)

	// Login with a differently-cased spelling of the same email.
	logged, token2, err := svc.Login(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token2)
	assert.Equal(t, account.ID, logged.ID)

	// The issued token authenticates back to the same account.
	authed, err := svc.Authenticate(ctx, token2)
	require.NoError(t, err)
	assert.Equal(t, account.ID, authed.ID)
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(newFakeAccountsRepo())
	ctx := context.Background()

	tests := []struct {
		name, accName, email, password string
	}{
		{"missing name", "", "a@x.com", "p"},
		{"missing email", "Ana", "", "p"},
		{"missing password", "Ana", "a@x.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.accName, tt.email, tt.password)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestRegister_DuplicateNormalizedEmail(t *testing.T) {
	svc := newService(newFakeAccountsRepo())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Ana", "Ana@X.com", "secret1")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Other", "  ana@x.COM ", "secret2")
	assert.ErrorIs(t, err, common.ErrorEmailExists)
}

func TestLogin_UniformFailure(t *testing.T) {
	svc := newService(newFakeAccountsRepo())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, "nobody@x.com", "secret1")
	_, _, errWrongPw := svc.Login(ctx, "ana@x.com", "wrong")

	assert.ErrorIs(t, errUnknown, common.ErrorInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, common.ErrorInvalidCredentials)
	// Identical failure either way: no account enumeration.
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLogin_RepoFailureIsWrapped(t *testing.T) {
	repo := newFakeAccountsRepo()
	repo.failWith = errors.New("db down")
	svc := newService(repo)

	_, _, err := svc.Login(context.Background(), "ana@x.com", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorInvalidCredentials)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	svc := newService(newFakeAccountsRepo())

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAuthenticate_AccountGone(t *testing.T) {
	repo := newFakeAccountsRepo()
	svc := newService(repo)
	ctx := context.Background()

	account, token, err := svc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	// Simulate out-of-band account removal; the token is still well-formed.
	delete(repo.byID, account.ID)
	delete(repo.byEmail, account.Email)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	repo := newFakeAccountsRepo()
	svc := newService(repo)
	ctx := context.Background()

	account, _, err := svc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	expired, err := auth.GenerateToken(account.ID, account.Email, []byte("test-secret"), -time.Minute)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, expired)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetProfile(t *testing.T) {
	svc := newService(newFakeAccountsRepo())
	ctx := context.Background()

	account, _, err := svc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	view, err := svc.GetProfile(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, view.ID)
	assert.Equal(t, "ana@x.com", view.Email)

	_, err = svc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
