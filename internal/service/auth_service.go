package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// RegisterInput describes a new account.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	Role      string
	Specialty *string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		logger:     loggerOrNop(logger),
	}
}

// RegisterUser creates an account and issues its first token.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*domain.User, string, domain.Token, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Name == "" || in.Password == "" {
		return nil, "", domain.Token{}, apperrors.NewValidationError("name, email, password required", nil)
	}
	if !strings.Contains(in.Email, "@") {
		return nil, "", domain.Token{}, apperrors.NewValidationError("invalid email", map[string]any{"email": in.Email})
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, "", domain.Token{}, apperrors.NewValidationError(err.Error(), nil)
	}
	if in.Specialty != nil && !role.HasSpecialty() {
		return nil, "", domain.Token{}, apperrors.NewValidationError("specialty only applies to staff", nil)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", domain.Token{}, err
	}

	user := &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Role:         role,
		Specialty:    in.Specialty,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, "", domain.Token{}, apperrors.NewConflict("email already registered", map[string]any{"email": in.Email})
		}
		return nil, "", domain.Token{}, err
	}
	s.logger.Info("user registered", zap.String("email", user.Key()), zap.String("role", string(user.Role)))

	token, meta, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", domain.Token{}, err
	}
	return user, token, meta, nil
}

// VerifyCredentials reports whether password matches the account for email.
// Unknown emails verify as false without error.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (bool, error) {
	_, ok, err := s.verify(ctx, email, password)
	return ok, err
}

func (s *AuthService) verify(ctx context.Context, email, password string) (*domain.User, bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, false, nil
	}
	return user, true, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, domain.Token, error) {
	user, ok, err := s.verify(ctx, email, password)
	if err != nil {
		return nil, "", domain.Token{}, err
	}
	if !ok {
		return nil, "", domain.Token{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, meta, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", domain.Token{}, err
	}
	return user, token, meta, nil
}

// ListUsers returns every registered account.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
