package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/materials-service/internal/auth"
	"github.com/spec-kit/materials-service/internal/config"
	"github.com/spec-kit/materials-service/internal/domain"
	"github.com/spec-kit/materials-service/internal/events"
	apperrors "github.com/spec-kit/materials-service/pkg/util"
)

// SignupInput carries the signup form fields.
type SignupInput struct {
	Email        string
	Password     string
	Username     string
	AgreeToTerms bool
	UserType     domain.UserType
	Company      string
	Interest     domain.Interest
}

// AuthService coordinates signup and login flows.
type AuthService struct {
	users      UserStore
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// UserStore is the slice of the user repository the auth flows need.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users UserStore, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup validates the form, rejects duplicate emails and persists a new
// user with a hashed password. Validation short-circuits on the first
// failing rule.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" || input.Username == "" {
		return nil, apperrors.NewValidationError("Please provide email, password and name", nil)
	}

	email := domain.NormalizeEmail(input.Email)
	if !domain.ValidEmail(email) {
		return nil, apperrors.NewValidationError("Please provide a valid email address.", nil)
	}
	if !domain.ValidPassword(input.Password) {
		return nil, apperrors.NewValidationError("Password must have at least 6 characters and contain at least one number, one lowercase and one uppercase letter.", nil)
	}
	if !input.AgreeToTerms {
		return nil, apperrors.NewValidationError("Agree to our terms in order to create a profile.", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("User already exists.", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Username:     input.Username,
		UserType:     input.UserType,
		Company:      input.Company,
		Interest:     input.Interest,
		AgreeToTerms: input.AgreeToTerms,
		WishList:     []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Email:    user.Email,
		Username: user.Username,
		UserType: user.UserType,
	})
	return user, nil
}

// Login verifies the credentials and returns a signed token carrying
// {id, email, username}.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperrors.NewValidationError("Please provide email and password.", nil)
	}

	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewUnauthorized("User not found.")
		}
		return "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", apperrors.NewUnauthorized("Unable to authenticate the user")
	}

	token, _, err := s.tokenMgr.Issue(auth.Identity{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
