package authService

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/config"
	"github.com/KotFed0t/portfolio_dashboard/data/repository"
	"github.com/KotFed0t/portfolio_dashboard/data/session"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/service"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func (f *fakeUsers) InsertUser(_ context.Context, user model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrAlreadyExists
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

type fakeSessions struct {
	sessions map[string]model.Session
	ttl      time.Duration
}

func (f *fakeSessions) SetSession(_ context.Context, token string, s model.Session, ttl time.Duration) error {
	f.sessions[token] = s
	f.ttl = ttl
	return nil
}

func (f *fakeSessions) GetSession(_ context.Context, token string) (model.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return model.Session{}, session.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessions) DeleteSession(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func newTestService() (*AuthService, *fakeSessions, *clockwork.FakeClock) {
	cfg := &config.Config{Session: config.Session{Expiration: time.Hour}}
	sessions := &fakeSessions{sessions: map[string]model.Session{}}
	clock := clockwork.NewFakeClock()
	s := New(cfg, &fakeUsers{users: map[string]model.User{}}, sessions, clock)
	s.cost = bcrypt.MinCost
	return s, sessions, clock
}

func TestSignupAndLogin(t *testing.T) {
	s, sessions, _ := newTestService()
	ctx := context.Background()

	user, err := s.Signup(ctx, " Alex@Example.com ", "Alex", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, err = s.Signup(ctx, "alex@example.com", "Again", "secret2")
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	token, logged, err := s.Login(ctx, "ALEX@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)
	assert.Equal(t, time.Hour, sessions.ttl)

	_, _, err = s.Login(ctx, "alex@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, _, err = s.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestSignup_Validation(t *testing.T) {
	s, _, _ := newTestService()

	_, err := s.Signup(context.Background(), "not-an-email", "x", "secret1")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = s.Signup(context.Background(), "a@b.io", "x", "12345")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = s.Signup(context.Background(), "long@b.io", "x", strings.Repeat("p", 73))
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = s.Signup(context.Background(), "max@b.io", "x", strings.Repeat("p", 72))
	assert.NoError(t, err)

	user, err := s.Signup(context.Background(), "sam@b.io", "  ", "123456")
	require.NoError(t, err)
	assert.Equal(t, "sam", user.Name)
}

func TestSessions(t *testing.T) {
	s, _, clock := newTestService()
	ctx := context.Background()

	user, err := s.Signup(ctx, "alex@example.com", "Alex", "secret1")
	require.NoError(t, err)
	token, _, err := s.Login(ctx, "alex@example.com", "secret1")
	require.NoError(t, err)

	sess, err := s.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)

	me, err := s.Me(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Alex", me.Name)

	_, err = s.ResolveSession(ctx, "")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	clock.Advance(time.Hour)
	_, err = s.ResolveSession(ctx, token)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	_, err := s.Signup(ctx, "alex@example.com", "Alex", "secret1")
	require.NoError(t, err)
	token, _, err := s.Login(ctx, "alex@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, token))
	_, err = s.Me(ctx, token)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	assert.NoError(t, s.Logout(ctx, ""))
}
