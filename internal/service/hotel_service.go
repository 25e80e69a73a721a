package service

import (
	"context"

	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/devon/hotel-listing-api/internal/repository"
)

type HotelService struct {
	hotels    repository.Repository[domain.Hotel, uint]
	countries repository.Repository[domain.Country, uint]
}

func NewHotelService(hotels repository.Repository[domain.Hotel, uint], countries repository.Repository[domain.Country, uint]) *HotelService {
	return &HotelService{hotels: hotels, countries: countries}
}

func (s *HotelService) GetAll(ctx context.Context) ([]domain.Hotel, error) {
	return s.hotels.GetAll(ctx)
}

func (s *HotelService) GetByID(ctx context.Context, id uint) (*domain.Hotel, error) {
	return s.hotels.GetByID(ctx, id)
}

func (s *HotelService) Create(ctx context.Context, hotel *domain.Hotel) error {
	if err := s.checkCountry(ctx, hotel.CountryID); err != nil {
		return err
	}
	return s.hotels.Create(ctx, hotel)
}

func (s *HotelService) Update(ctx context.Context, hotel *domain.Hotel) error {
	if err := s.checkCountry(ctx, hotel.CountryID); err != nil {
		return err
	}
	return s.hotels.Update(ctx, hotel)
}

func (s *HotelService) Delete(ctx context.Context, id uint) error {
	return s.hotels.Delete(ctx, id)
}

// checkCountry rejects hotels pointing at a country that does not exist.
func (s *HotelService) checkCountry(ctx context.Context, countryID uint) error {
	ok, err := s.countries.Exists(ctx, countryID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
