package service

import (
	"github.com/devon/hotel-listing-api/internal/config"
	"github.com/devon/hotel-listing-api/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Country *CountryService
	Hotel   *HotelService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, cfg.JWT),
		Country: NewCountryService(repos.Countries),
		Hotel:   NewHotelService(repos.Hotels, repos.Countries),
	}
}
