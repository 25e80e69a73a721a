package postgres

import (
	"context"
	"errors"

	"github.com/devon/hotel-listing-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// genericRepository is the one concrete implementation of
// repository.Repository. The key column is always the gorm primary key;
// Update is a full-record replace.
type genericRepository[T any, K comparable] struct {
	db *gorm.DB
}

func NewGenericRepository[T any, K comparable](db *gorm.DB) *genericRepository[T, K] {
	return &genericRepository[T, K]{db: db}
}

func (r *genericRepository[T, K]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *genericRepository[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *genericRepository[T, K]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *genericRepository[T, K]) Update(ctx context.Context, entity *T) error {
	res := r.db.WithContext(ctx).Model(entity).Select("*").Omit("created_at", clause.Associations).Updates(entity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *genericRepository[T, K]) Delete(ctx context.Context, id K) error {
	var entity T
	res := r.db.WithContext(ctx).Delete(&entity, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *genericRepository[T, K]) Exists(ctx context.Context, id K) (bool, error) {
	var count int64
	var entity T
	err := r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
