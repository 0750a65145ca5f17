package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/logging"
)

type memoryUsers struct {
	mu      sync.Mutex
	byLogin map[string]*entities.User
	failErr error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byLogin: make(map[string]*entities.User)}
}

func (m *memoryUsers) CreateUser(_ context.Context, user *entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.byLogin[user.Login]; ok {
		return apperr.ErrConflict
	}
	user.ID = strconv.Itoa(len(m.byLogin) + 1)
	cp := *user
	m.byLogin[user.Login] = &cp
	return nil
}

func (m *memoryUsers) GetUserByLogin(_ context.Context, login string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	u, ok := m.byLogin[login]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type recordedAuth struct {
	userID  string
	action  entities.AuditAction
	success bool
}

type recordingAudit struct {
	mu     sync.Mutex
	events []recordedAuth
}

func (r *recordingAudit) LogBook(string, entities.AuditAction, string) {}

func (r *recordingAudit) LogAuth(userID string, action entities.AuditAction, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedAuth{userID: userID, action: action, success: success})
}

func newTestService(users *memoryUsers, audit *recordingAudit, field config.LoginField) *Service {
	cfg := config.Auth{
		LoginField:     field,
		ValidateFormat: true,
		BcryptCost:     4,
	}
	return NewService(users, NewTokenIssuer("secret", time.Hour), audit, cfg, logging.Discard())
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUsers()
	audit := &recordingAudit{}
	svc := newTestService(users, audit, config.LoginFieldEmail)

	res, err := svc.Register(ctx, Credentials{Name: "Ann", Email: "Ann@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, entities.PublicUser{Name: "Ann", Email: "ann@example.com"}, res.Data)

	stored, err := users.GetUserByLogin(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, CheckPassword("password123", stored.PasswordHash))

	res, err = svc.Register(ctx, Credentials{Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "Email already exists.", res.Message)

	require.Len(t, audit.events, 1)
	assert.Equal(t, entities.AuditActionUserRegister, audit.events[0].action)
}

func TestService_Register_Validation(t *testing.T) {
	svc := newTestService(newMemoryUsers(), &recordingAudit{}, config.LoginFieldEmail)

	tests := []struct {
		name    string
		creds   Credentials
		message string
	}{
		{name: "missing email", creds: Credentials{Password: "password123"}, message: "Email and password are required."},
		{name: "missing password", creds: Credentials{Email: "a@example.com"}, message: "Email and password are required."},
		{name: "bad email", creds: Credentials{Email: "not-an-email", Password: "password123"}, message: "Invalid email format."},
		{name: "short password", creds: Credentials{Email: "a@example.com", Password: "short"}, message: "Password must be between 8 and 72 bytes long."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Register(context.Background(), tt.creds)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, res.Status)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestService_Register_UsernameLogin(t *testing.T) {
	svc := newTestService(newMemoryUsers(), &recordingAudit{}, config.LoginFieldUsername)

	res, err := svc.Register(context.Background(), Credentials{Username: "bad name", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = svc.Register(context.Background(), Credentials{Username: "reader_1", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.Status)

	res, err = svc.Login(context.Background(), Credentials{Username: "reader_1", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
}

func TestService_Register_StoreFailure(t *testing.T) {
	users := newMemoryUsers()
	users.failErr = errors.New("connection refused")
	svc := newTestService(users, &recordingAudit{}, config.LoginFieldEmail)

	res, err := svc.Register(context.Background(), Credentials{Email: "a@example.com", Password: "password123"})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUsers()
	audit := &recordingAudit{}
	svc := newTestService(users, audit, config.LoginFieldEmail)

	_, err := svc.Register(ctx, Credentials{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)

	t.Run("success issues a token for the user id", func(t *testing.T) {
		res, err := svc.Login(ctx, Credentials{Email: "ANN@example.com", Password: "password123"})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.Status)

		public, ok := res.Data.(entities.PublicUser)
		require.True(t, ok)
		assert.Equal(t, "Ann", public.Name)
		require.NotEmpty(t, public.Token)

		userID, err := svc.tokens.ParseToken(public.Token)
		require.NoError(t, err)
		assert.Equal(t, "1", userID)
	})

	t.Run("wrong password", func(t *testing.T) {
		res, err := svc.Login(ctx, Credentials{Email: "ann@example.com", Password: "wrong-password"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.Status)
	})

	t.Run("unknown user", func(t *testing.T) {
		res, err := svc.Login(ctx, Credentials{Email: "bob@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, res.Status)
	})

	t.Run("missing fields", func(t *testing.T) {
		res, err := svc.Login(ctx, Credentials{Email: "ann@example.com"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.Status)
	})

	var failed int
	for _, e := range audit.events {
		if e.action == entities.AuditActionUserLogin && !e.success {
			failed++
		}
	}
	assert.Equal(t, 2, failed)
}
