package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// Credentials is the body of register and login requests.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Service registers users and issues access tokens.
type Service struct {
	users  services.UserStore
	tokens *TokenIssuer
	audit  services.AuditLogger
	config config.Auth
	log    *slog.Logger
}

func NewService(users services.UserStore, tokens *TokenIssuer, audit services.AuditLogger, cfg config.Auth, log *slog.Logger) *Service {
	if audit == nil {
		audit = services.NoopAuditLogger
	}
	if cfg.LoginField == "" {
		cfg.LoginField = config.LoginFieldEmail
	}
	return &Service{
		users:  users,
		tokens: tokens,
		audit:  audit,
		config: cfg,
		log:    log,
	}
}

// loginKey returns the normalized value of the configured login field.
// Emails compare case-insensitively.
func (s *Service) loginKey(creds Credentials) string {
	if s.config.LoginField == config.LoginFieldUsername {
		return strings.TrimSpace(creds.Username)
	}
	return strings.ToLower(strings.TrimSpace(creds.Email))
}

func (s *Service) fieldLabel() string {
	if s.config.LoginField == config.LoginFieldUsername {
		return "Username"
	}
	return "Email"
}

func (s *Service) Register(ctx context.Context, creds Credentials) (*services.Result, error) {
	login := s.loginKey(creds)
	if login == "" || creds.Password == "" {
		return services.NewResult(http.StatusBadRequest,
			fmt.Sprintf("%s and password are required.", s.fieldLabel()), nil), nil
	}

	user := &entities.User{
		Name:     strings.TrimSpace(creds.Name),
		Email:    strings.ToLower(strings.TrimSpace(creds.Email)),
		Username: strings.TrimSpace(creds.Username),
		Login:    login,
	}

	if verr := s.validate(user, creds.Password); verr != nil {
		return services.NewResult(http.StatusBadRequest, verr.Error(), nil), nil
	}

	existing, err := s.users.GetUserByLogin(ctx, login)
	switch {
	case err == nil && existing != nil:
		return s.conflict(), nil
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		s.log.Error("failed to look up user", "op", "auth.register", "error", err)
		return nil, apperr.Internal("auth.register", err)
	}

	hash, err := HashPassword(creds.Password, s.config.BcryptCost)
	if err != nil {
		return nil, apperr.Internal("auth.register", fmt.Errorf("failed to hash password: %w", err))
	}
	user.PasswordHash = hash

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return s.conflict(), nil
		}
		s.log.Error("failed to create user", "op", "auth.register", "error", err)
		return nil, apperr.Internal("auth.register", err)
	}

	s.log.Info("user registered", "op", "auth.register", "user_id", user.ID)
	s.audit.LogAuth(user.ID, entities.AuditActionUserRegister, true)
	return services.NewResult(http.StatusCreated, "User registered successfully.", user.Public()), nil
}

func (s *Service) validate(user *entities.User, password string) *validation.Error {
	if verr := validation.ValidatePassword(password); verr != nil {
		return verr
	}
	if !s.config.ValidateFormat {
		return nil
	}
	if user.Email != "" {
		if verr := validation.ValidateEmail(user.Email); verr != nil {
			return verr
		}
	}
	if user.Username != "" {
		if verr := validation.ValidateUsername(user.Username); verr != nil {
			return verr
		}
	}
	return nil
}

func (s *Service) conflict() *services.Result {
	return services.NewResult(http.StatusConflict, fmt.Sprintf("%s already exists.", s.fieldLabel()), nil)
}

func (s *Service) Login(ctx context.Context, creds Credentials) (*services.Result, error) {
	login := s.loginKey(creds)
	if login == "" || creds.Password == "" {
		return services.NewResult(http.StatusBadRequest,
			fmt.Sprintf("%s and password are required.", s.fieldLabel()), nil), nil
	}

	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.audit.LogAuth("", entities.AuditActionUserLogin, false)
			return services.NewResult(http.StatusNotFound, "User not found.", nil), nil
		}
		s.log.Error("failed to look up user", "op", "auth.login", "error", err)
		return nil, apperr.Internal("auth.login", err)
	}

	if err := CheckPassword(creds.Password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			s.log.Info("invalid password attempt", "op", "auth.login", "user_id", user.ID)
			s.audit.LogAuth(user.ID, entities.AuditActionUserLogin, false)
			return services.NewResult(http.StatusUnauthorized, "Invalid password.", nil), nil
		}
		return nil, apperr.Internal("auth.login", err)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, apperr.Internal("auth.login", fmt.Errorf("failed to sign token: %w", err))
	}

	s.audit.LogAuth(user.ID, entities.AuditActionUserLogin, true)
	public := user.Public()
	public.Token = token
	return services.NewResult(http.StatusOK, "Login successful.", public), nil
}
