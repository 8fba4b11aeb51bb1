package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"neargo/internal/delivery/http/helpers"
	"neargo/internal/domain"
)

type ReserveController struct {
	Logger  *slog.Logger
	Service domain.ReservationService
}

func NewReserveController(logger *slog.Logger, svc domain.ReservationService) *ReserveController {
	return &ReserveController{
		Logger:  logger,
		Service: svc,
	}
}

// ReserveRequest is the request body for POST /reserve.
type ReserveRequest struct {
	EventID string `json:"event_id"`
	SlotID  string `json:"slot_id"`
	Qty     int    `json:"qty"`
	Email   string `json:"email"`
}

// Validate implements helpers.Validator.
func (r *ReserveRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.SlotID) == "" {
		errs = append(errs, "slot_id is required")
	}
	if r.Qty < 1 {
		errs = append(errs, "qty must be at least 1")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" || !strings.Contains(email, "@") {
		errs = append(errs, "a valid email is required")
	}
	r.Email = email
	return errs
}

// ReserveResponse is the payload returned on a successful reservation.
type ReserveResponse struct {
	HoldID    string    `json:"hold_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReserveSuccessResponse is the success response envelope for POST /reserve.
type ReserveSuccessResponse struct {
	Data  *ReserveResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// noCapacityDetails is attached to the no_capacity error response.
type noCapacityDetails struct {
	Free int `json:"free"`
}

// Reserve godoc
// @Summary Place a time-limited hold on slot capacity
// @Description Checks remaining capacity (total minus confirmed reservations minus unexpired holds) and creates a hold that expires in 10 minutes. The check and insert run under a slot row lock, so concurrent requests cannot oversell a slot.
// @Tags reservations
// @Accept json
// @Produce json
// @Param body body controllers.ReserveRequest true "Reservation request"
// @Success 201 {object} controllers.ReserveSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: no_capacity, error.details.free: remaining capacity"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reserve [post]
func (c *ReserveController) Reserve(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	hold, err := c.Service.Reserve(r.Context(), req.EventID, req.SlotID, req.Qty, req.Email)
	if err != nil {
		var capErr *domain.NoCapacityError
		if errors.As(err, &capErr) {
			helpers.WriteJSONErrorDetails(w, http.StatusConflict, helpers.ErrCodeNoCapacity,
				"not enough capacity", noCapacityDetails{Free: capErr.Free})
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "slot not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, &ReserveResponse{
		HoldID:    hold.ID,
		ExpiresAt: hold.ExpiresAt,
	})
}

// ReleaseResponse is the payload returned on a successful release.
type ReleaseResponse struct {
	OK bool `json:"ok"`
}

// Release godoc
// @Summary Release a capacity hold
// @Description Flips a held hold to released. Idempotent: releasing an already-released hold succeeds without changing state.
// @Tags reservations
// @Produce json
// @Param holdID path string true "Hold ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /holds/{holdID}/release [post]
func (c *ReserveController) Release(w http.ResponseWriter, r *http.Request) {
	holdID := r.PathValue("holdID")
	if holdID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing holdID")
		return
	}

	if err := c.Service.Release(r.Context(), holdID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "hold not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &ReleaseResponse{OK: true})
}
