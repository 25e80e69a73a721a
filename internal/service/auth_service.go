package service

import (
	"context"
	"errors"
	"time"

	"github.com/devon/hotel-listing-api/internal/config"
	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/devon/hotel-listing-api/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// AuthService orchestrates registration, login and refresh-token renewal.
type AuthService struct {
	userRepo repository.UserRepository
	issuer   *TokenIssuer
	refresh  *RefreshTokenManager
	validate *validator.Validate
}

func NewAuthService(userRepo repository.UserRepository, cfg config.JWTConfig) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   NewTokenIssuer(cfg),
		refresh:  NewRefreshTokenManager(cfg.RefreshTokenTTL),
		validate: validator.New(),
	}
}

type RegisterInput struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=5,containsany=0123456789"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult pairs a serialized access token with its expiry, the user id
// and the current refresh token. Returned to the caller, never persisted.
type AuthResult struct {
	AccessToken  string    `json:"accessToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	UserID       string    `json:"userId"`
	RefreshToken string    `json:"refreshToken"`
}

// Register creates a user with the default role. The returned slice lists
// every validation failure as a (field, reason) pair; a duplicate email is
// one of them, not an error. The error return is for faults only.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (domain.ValidationErrors, error) {
	failures := s.validateRegister(input)

	if input.Email != "" {
		_, err := s.userRepo.GetByEmail(ctx, input.Email)
		switch {
		case err == nil:
			failures = append(failures, domain.FieldError{Field: "email", Reason: "email already registered"})
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	if len(failures) > 0 {
		return failures, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Roles:        datatypes.NewJSONSlice([]string{domain.DefaultRole}),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return nil, nil
}

// Login authenticates by email and password. Missing user and wrong
// password collapse into the same ErrInvalidCredentials so the response
// never reveals which factor failed.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user, nil)
}

// CreateRefreshToken generates a fresh opaque token without persisting it.
func (s *AuthService) CreateRefreshToken() (string, error) {
	return s.refresh.Generate()
}

// VerifyRefreshToken renews an access/refresh pair. The access token may
// be expired but must carry a valid signature; the refresh token must be
// the one currently bound to that user and still within its lifetime.
// Rotation is a compare-and-swap, so of two concurrent calls with the
// same pair at most one succeeds.
func (s *AuthService) VerifyRefreshToken(ctx context.Context, request AuthResult) (*AuthResult, error) {
	claims, err := s.issuer.Validate(request.AccessToken, true)
	if err != nil {
		return nil, domain.ErrMalformedToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrMalformedToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != request.RefreshToken {
		return nil, domain.ErrInvalidRefreshToken
	}
	if user.RefreshTokenExpiresAt == nil || time.Now().After(*user.RefreshTokenExpiresAt) {
		return nil, domain.ErrInvalidRefreshToken
	}

	return s.issueTokens(ctx, user, &request.RefreshToken)
}

// ValidateAccessToken is the boundary check for protected endpoints;
// expiry is always enforced here.
func (s *AuthService) ValidateAccessToken(raw string) (*AccessClaims, error) {
	return s.issuer.Validate(raw, false)
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User, current *string) (*AuthResult, error) {
	accessToken, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.refresh.Generate()
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.RotateRefreshToken(ctx, user.ID, current, refreshToken, s.refresh.ComputeExpiry()); err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt,
		UserID:       user.ID.String(),
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) validateRegister(input RegisterInput) domain.ValidationErrors {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return domain.ValidationErrors{{Field: "request", Reason: "invalid registration payload"}}
	}

	var failures domain.ValidationErrors
	for _, fe := range err.(validator.ValidationErrors) {
		failures = append(failures, domain.FieldError{
			Field:  fieldName(fe.Field()),
			Reason: reasonFor(fe),
		})
	}
	return failures
}

func fieldName(structField string) string {
	switch structField {
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "FirstName":
		return "firstName"
	case "LastName":
		return "lastName"
	}
	return structField
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a well-formed email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "containsany":
		return "must contain a digit"
	}
	return "is invalid"
}
