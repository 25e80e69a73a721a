package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/devon/hotel-listing-api/internal/service"
	"go.uber.org/zap"
)

type HotelHandler struct {
	hotelService *service.HotelService
	logger       *zap.Logger
}

func NewHotelHandler(hotelService *service.HotelService, logger *zap.Logger) *HotelHandler {
	return &HotelHandler{hotelService: hotelService, logger: logger}
}

type HotelRequest struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Rating    *float64 `json:"rating,omitempty"`
	CountryID uint     `json:"countryId"`
}

func (h *HotelHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.hotelService.GetAll(r.Context())
	if err != nil {
		h.logger.Error("list hotels failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, hotels)
}

func (h *HotelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	hotel, err := h.hotelService.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "get hotel")
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *HotelHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeHotel(w, r)
	if !ok {
		return
	}

	hotel := &domain.Hotel{
		Name:      req.Name,
		Address:   req.Address,
		Rating:    req.Rating,
		CountryID: req.CountryID,
	}
	if err := h.hotelService.Create(r.Context(), hotel); err != nil {
		h.respondError(w, err, "create hotel")
		return
	}
	writeJSON(w, http.StatusCreated, hotel)
}

func (h *HotelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	req, ok := decodeHotel(w, r)
	if !ok {
		return
	}

	hotel := &domain.Hotel{
		ID:        id,
		Name:      req.Name,
		Address:   req.Address,
		Rating:    req.Rating,
		CountryID: req.CountryID,
	}
	if err := h.hotelService.Update(r.Context(), hotel); err != nil {
		h.respondError(w, err, "update hotel")
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *HotelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.hotelService.Delete(r.Context(), id); err != nil {
		h.respondError(w, err, "delete hotel")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HotelHandler) respondError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	h.logger.Error(op+" failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func decodeHotel(w http.ResponseWriter, r *http.Request) (HotelRequest, bool) {
	var req HotelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Name == "" || req.Address == "" {
		writeError(w, http.StatusBadRequest, "name and address are required")
		return req, false
	}
	return req, true
}
