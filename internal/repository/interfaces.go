package repository

import (
	"context"
	"time"

	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/google/uuid"
)

// Repository is the uniform CRUD contract over persisted entities. It
// assumes nothing about T beyond a primary key of type K; each operation
// is individually atomic and no cross-call transaction is exposed.
type Repository[T any, K comparable] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id K) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id K) error
	Exists(ctx context.Context, id K) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// RotateRefreshToken atomically replaces the stored refresh token,
	// matching on the current value. When current is nil any stored token
	// is overwritten (initial issue on login); otherwise the update only
	// applies if the stored token still equals *current, and
	// domain.ErrInvalidRefreshToken is returned when it no longer does.
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, current *string, next string, expiresAt time.Time) error
}

type Repositories struct {
	User      UserRepository
	Countries Repository[domain.Country, uint]
	Hotels    Repository[domain.Hotel, uint]
}
