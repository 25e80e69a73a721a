package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	res := r.db.WithContext(ctx).Model(user).Select("*").Omit("created_at").Updates(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RotateRefreshToken is the single compare-and-swap guarding refresh-token
// rotation. Two concurrent rotations with the same current token race on
// the WHERE clause; the loser matches zero rows and gets
// domain.ErrInvalidRefreshToken.
func (r *userRepository) RotateRefreshToken(ctx context.Context, userID uuid.UUID, current *string, next string, expiresAt time.Time) error {
	tx := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID)
	if current != nil {
		tx = tx.Where("refresh_token = ?", *current)
	}

	res := tx.Updates(map[string]interface{}{
		"refresh_token":            next,
		"refresh_token_expires_at": expiresAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if current != nil {
			return domain.ErrInvalidRefreshToken
		}
		return domain.ErrNotFound
	}
	return nil
}
