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

type RoomController struct {
	Logger  *slog.Logger
	Service domain.RoomService
}

func NewRoomController(logger *slog.Logger, svc domain.RoomService) *RoomController {
	return &RoomController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateRoomRequest is the request body for POST /venues/{venueID}/rooms.
type CreateRoomRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Notes    string `json:"notes"`
}

// Validate implements helpers.Validator.
func (r *CreateRoomRequest) Validate() []string {
	var problems []string
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		problems = append(problems, "name is required")
	}
	if r.Capacity < 0 {
		problems = append(problems, "capacity must not be negative")
	}
	return problems
}

// CreateRoom godoc
// @Summary Create a room in a venue
// @Description Creates a room under the venue. Only the venue creator may add rooms.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID"
// @Param body body controllers.CreateRoomRequest true "Room details"
// @Success 201 {object} helpers.APIResponse "data: Room"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID}/rooms [post]
func (c *RoomController) CreateRoom(w http.ResponseWriter, r *http.Request) {
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

	var req CreateRoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	room := domain.NewRoom(venueID, req.Name, req.Capacity, req.Notes, time.Now().UTC())
	if err := c.Service.CreateRoom(r.Context(), venueID, userID, room); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "venue not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the venue creator may add rooms")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, room)
}

// ListVenueRooms godoc
// @Summary List the rooms of a venue
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID"
// @Success 200 {object} helpers.APIResponse "data: []Room"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID}/rooms [get]
func (c *RoomController) ListVenueRooms(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if venueID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing venueID")
		return
	}
	rooms, err := c.Service.ListVenueRooms(r.Context(), venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "venue not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rooms)
}

// GetRoom godoc
// @Summary Get a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param roomID path string true "Room ID"
// @Success 200 {object} helpers.APIResponse "data: Room"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{roomID} [get]
func (c *RoomController) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomID")
	if roomID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing roomID")
		return
	}
	room, err := c.Service.GetRoom(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "room not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, room)
}

// DeleteRoom godoc
// @Summary Delete a room
// @Description Deletes a single room. Only the venue creator may delete it; rooms whose venue is already gone may be deleted by anyone authenticated.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param roomID path string true "Room ID"
// @Success 204 "deleted"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{roomID} [delete]
func (c *RoomController) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomID")
	if roomID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing roomID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.DeleteRoom(r.Context(), roomID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "room not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the venue creator may delete rooms")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
