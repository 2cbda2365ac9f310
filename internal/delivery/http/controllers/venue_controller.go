package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"roomscheduler/internal/delivery/http/helpers"
	"roomscheduler/internal/delivery/http/middleware"
	"roomscheduler/internal/domain"
)

type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateVenueRequest is the request body for POST /venues.
type CreateVenueRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// Validate implements helpers.Validator.
func (r *CreateVenueRequest) Validate() []string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

// CreateVenue godoc
// @Summary Create a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateVenueRequest true "Venue details"
// @Success 201 {object} helpers.APIResponse "data: Venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [post]
func (c *VenueController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req CreateVenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	venue := domain.NewVenue(req.Name, req.Address, req.Description, userID, time.Now().UTC())
	if err := c.Service.CreateVenue(r.Context(), venue); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// VenueListResponse is the paginated payload for GET /venues.
type VenueListResponse struct {
	Venues     []*domain.Venue        `json:"venues"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListVenues godoc
// @Summary List venues
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data: VenueListResponse"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [get]
func (c *VenueController) ListVenues(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	venues, total, err := c.Service.ListVenues(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, VenueListResponse{
		Venues:     venues,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GetVenue godoc
// @Summary Get a venue
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID"
// @Success 200 {object} helpers.APIResponse "data: Venue"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [get]
func (c *VenueController) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if venueID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing venueID")
		return
	}
	venue, err := c.Service.GetVenue(r.Context(), venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "venue not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// GetDeletionInfo godoc
// @Summary Preview what deleting a venue would touch
// @Description Returns the events that block deletion and the rooms the cascade would delete. Advisory only; the delete endpoint re-checks.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID"
// @Success 200 {object} helpers.APIResponse "data: VenueDeletionInfo"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID}/deletion-info [get]
func (c *VenueController) GetDeletionInfo(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if venueID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing venueID")
		return
	}
	info, err := c.Service.GetDeletionInfo(r.Context(), venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "venue not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, info)
}

// DeleteVenue godoc
// @Summary Delete a venue and cascade over its rooms
// @Description Deletes the venue. Blocked with 409 when events still reference it unless force=true. Only the creator may delete. Room deletions are best effort; failures are reported in the result.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID"
// @Param force query bool false "Delete even if events reference the venue"
// @Success 200 {object} helpers.APIResponse "data: VenueDeleteResult"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict, details: blocking events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [delete]
func (c *VenueController) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if venueID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing venueID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	force := r.URL.Query().Get("force") == "true"

	result, err := c.Service.DeleteVenue(r.Context(), venueID, userID, force)
	if err != nil {
		var blocked *domain.VenueBlockedError
		switch {
		case errors.As(err, &blocked):
			helpers.WriteJSONErrorDetails(w, http.StatusConflict, helpers.ErrCodeConflict,
				"venue has referencing events", map[string]any{"blocking_events": blocked.Events})
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "venue not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the creator may delete a venue")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
