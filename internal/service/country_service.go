package service

import (
	"context"

	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/devon/hotel-listing-api/internal/repository"
)

type CountryService struct {
	countries repository.Repository[domain.Country, uint]
}

func NewCountryService(countries repository.Repository[domain.Country, uint]) *CountryService {
	return &CountryService{countries: countries}
}

func (s *CountryService) GetAll(ctx context.Context) ([]domain.Country, error) {
	return s.countries.GetAll(ctx)
}

func (s *CountryService) GetByID(ctx context.Context, id uint) (*domain.Country, error) {
	return s.countries.GetByID(ctx, id)
}

func (s *CountryService) Create(ctx context.Context, country *domain.Country) error {
	return s.countries.Create(ctx, country)
}

func (s *CountryService) Update(ctx context.Context, country *domain.Country) error {
	return s.countries.Update(ctx, country)
}

func (s *CountryService) Delete(ctx context.Context, id uint) error {
	return s.countries.Delete(ctx, id)
}
