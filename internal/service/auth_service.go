package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/shubh1628/Dabba-delight/internal/auth"
	"github.com/shubh1628/Dabba-delight/internal/config"
	"github.com/shubh1628/Dabba-delight/internal/domain"
	"github.com/shubh1628/Dabba-delight/internal/repository"
	apperrors "github.com/shubh1628/Dabba-delight/pkg/util/errorutil"
)

// User-facing failure messages.
const (
	MsgMissingCredentials = "Please enter both email and password."
	MsgInvalidCredentials = "Invalid login credentials"
	MsgRoleMismatch       = "Selected user type does not match your account type"
	MsgMissingFields      = "Please fill in all fields."
	MsgPasswordMismatch   = "Passwords do not match."
	MsgInvalidUserType    = "Please select a valid account type."
	MsgEmailTaken         = "User with this email already exists."
)

// SessionStore is the slice of the session store the auth flows need.
type SessionStore interface {
	Write(ctx context.Context, scope domain.Scope, record *domain.SessionRecord) error
	Clear(ctx context.Context, scope domain.Scope) error
}

// LoginInput carries the login form.
type LoginInput struct {
	Email    string
	Password string
	UserType domain.UserType
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Session  *domain.SessionRecord
	Redirect string
}

// SignupInput carries the signup form.
type SignupInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	UserType        domain.UserType
}

// AuthService coordinates login, signup and logout flows.
type AuthService struct {
	users      repository.UserRepository
	sessions   SessionStore
	logger     *zap.Logger
	bcryptCost int
	now        func() time.Time
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Sessions SessionStore
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		now:        time.Now,
	}
}

// Login verifies credentials and the claimed role, then stores the session
// record for scope.
func (s *AuthService) Login(ctx context.Context, scope domain.Scope, in LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperrors.NewValidationError(MsgMissingCredentials, nil)
	}

	identity, err := s.verifyCredentials(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}

	user, found, err := s.findUser(ctx, s.users.GetByID, identity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
	}

	if user.UserType != in.UserType {
		s.logger.Info("login role mismatch",
			zap.String("user_id", user.ID),
			zap.String("claimed", string(in.UserType)))
		return nil, apperrors.NewRoleMismatch(MsgRoleMismatch)
	}

	record := domain.NewSessionRecord(user, s.now())
	if err := s.sessions.Write(ctx, scope, record); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("user_type", string(user.UserType)))
	return &LoginResult{Session: record, Redirect: auth.DashboardFor(record.UserType)}, nil
}

// Signup creates an account. It does not log the new user in.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, apperrors.NewValidationError(MsgMissingFields, nil)
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperrors.NewValidationError(MsgPasswordMismatch, nil)
	}
	if !in.UserType.SelfRegistrable() {
		return nil, apperrors.NewValidationError(MsgInvalidUserType, map[string]any{"userType": in.UserType})
	}

	// Best effort only: a concurrent signup can pass this check too, in
	// which case the unique index decides.
	_, exists, err := s.findUser(ctx, s.users.GetByEmail, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict(MsgEmailTaken, nil)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		UserType:     in.UserType,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict(MsgEmailTaken, nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID), zap.String("user_type", string(user.UserType)))
	return user, nil
}

// Logout removes the session record of scope.
func (s *AuthService) Logout(ctx context.Context, scope domain.Scope) error {
	if scope == "" {
		return nil
	}
	return s.sessions.Clear(ctx, scope)
}

// ListUsers returns every account, newest first.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// verifyCredentials checks email and password and returns the account id.
func (s *AuthService) verifyCredentials(ctx context.Context, email, password string) (string, error) {
	user, found, err := s.findUser(ctx, s.users.GetByEmail, email)
	if err != nil {
		return "", err
	}
	if !found {
		return "", apperrors.NewUnauthorized(MsgInvalidCredentials)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return "", apperrors.NewUnauthorized(MsgInvalidCredentials)
		}
		return "", apperrors.NewInternalError(err)
	}
	return user.ID, nil
}

// findUser treats "no rows" as a normal outcome rather than an error.
func (s *AuthService) findUser(ctx context.Context, lookup func(context.Context, string) (*domain.User, error), key string) (*domain.User, bool, error) {
	user, err := lookup(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, apperrors.NewInternalError(err)
	}
	return user, true, nil
}
