package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/devon/hotel-listing-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CountryHandler struct {
	countryService *service.CountryService
	logger         *zap.Logger
}

func NewCountryHandler(countryService *service.CountryService, logger *zap.Logger) *CountryHandler {
	return &CountryHandler{countryService: countryService, logger: logger}
}

type CountryRequest struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

func (h *CountryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countryService.GetAll(r.Context())
	if err != nil {
		h.logger.Error("list countries failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, countries)
}

func (h *CountryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	country, err := h.countryService.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "get country")
		return
	}
	writeJSON(w, http.StatusOK, country)
}

func (h *CountryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CountryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	country := &domain.Country{Name: req.Name, ShortName: req.ShortName}
	if err := h.countryService.Create(r.Context(), country); err != nil {
		h.respondError(w, err, "create country")
		return
	}
	writeJSON(w, http.StatusCreated, country)
}

func (h *CountryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req CountryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	country := &domain.Country{ID: id, Name: req.Name, ShortName: req.ShortName}
	if err := h.countryService.Update(r.Context(), country); err != nil {
		h.respondError(w, err, "update country")
		return
	}
	writeJSON(w, http.StatusOK, country)
}

func (h *CountryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.countryService.Delete(r.Context(), id); err != nil {
		h.respondError(w, err, "delete country")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CountryHandler) respondError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	h.logger.Error(op+" failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
