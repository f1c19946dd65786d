package authService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/config"
	"github.com/KotFed0t/portfolio_dashboard/data/repository"
	"github.com/KotFed0t/portfolio_dashboard/data/session"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/service"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	// bcrypt only accepts up to 72 bytes
	maxPasswordBytes = 72
)

type UserRepository interface {
	InsertUser(ctx context.Context, user model.User) error
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id string) (model.User, error)
}

type SessionStore interface {
	SetSession(ctx context.Context, token string, s model.Session, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

type AuthService struct {
	cfg      *config.Config
	users    UserRepository
	sessions SessionStore
	clock    clockwork.Clock
	idGen    func() string
	cost     int
}

func New(cfg *config.Config, users UserRepository, sessions SessionStore, clock clockwork.Clock) *AuthService {
	return &AuthService{
		cfg:      cfg,
		users:    users,
		sessions: sessions,
		clock:    clock,
		idGen:    utils.NewID,
		cost:     bcrypt.DefaultCost,
	}
}

func (s *AuthService) Signup(ctx context.Context, email, name, password string) (model.User, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AuthService.Signup"

	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, fmt.Errorf("%w: invalid email", service.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return model.User{}, fmt.Errorf("%w: password must be at least %d characters", service.ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return model.User{}, fmt.Errorf("%w: password must be at most %d bytes", service.ErrInvalidInput, maxPasswordBytes)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		slog.Error("can't hash password", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.User{}, err
	}

	user := model.User{
		ID:           s.idGen(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	if err = s.users.InsertUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return model.User{}, service.ErrEmailTaken
		}
		return model.User{}, err
	}

	slog.Info("user signed up", slog.String("rqID", rqID), slog.String("op", op), slog.String("userID", user.ID))

	return user, nil
}

// Login checks the credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, user model.User, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AuthService.Login"

	user, err = s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", model.User{}, service.ErrUnauthorized
		}
		return "", model.User{}, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Info("wrong password", slog.String("rqID", rqID), slog.String("op", op), slog.String("userID", user.ID))
		return "", model.User{}, service.ErrUnauthorized
	}

	token = s.idGen()
	sess := model.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		ExpiresAt: s.clock.Now().Add(s.cfg.Session.Expiration),
	}
	if err = s.sessions.SetSession(ctx, token, sess, s.cfg.Session.Expiration); err != nil {
		return "", model.User{}, err
	}

	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}

// ResolveSession returns the live session behind token or service.ErrUnauthorized.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (model.Session, error) {
	if token == "" {
		return model.Session{}, service.ErrUnauthorized
	}

	sess, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return model.Session{}, service.ErrUnauthorized
		}
		return model.Session{}, err
	}

	if !sess.ExpiresAt.IsZero() && !s.clock.Now().Before(sess.ExpiresAt) {
		return model.Session{}, service.ErrUnauthorized
	}

	return sess, nil
}

func (s *AuthService) Me(ctx context.Context, token string) (model.User, error) {
	sess, err := s.ResolveSession(ctx, token)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.users.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, service.ErrUnauthorized
		}
		return model.User{}, err
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
