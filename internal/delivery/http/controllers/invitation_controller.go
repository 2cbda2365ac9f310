package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"roomscheduler/internal/delivery/http/helpers"
	"roomscheduler/internal/delivery/http/middleware"
	"roomscheduler/internal/domain"
)

// invitationCodeRegex matches an 8-character invitation code from [A-Z0-9].
var invitationCodeRegex = regexp.MustCompile(`^[A-Z0-9]{8}$`)

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateInvitationRequest is the request body for POST /events/{eventID}/invitations.
type CreateInvitationRequest struct {
	Kind           string `json:"kind"`
	Description    string `json:"description"`
	RecipientEmail string `json:"recipient_email"`
}

// Validate implements helpers.Validator.
func (r *CreateInvitationRequest) Validate() []string {
	kind := domain.InvitationKind(strings.TrimSpace(r.Kind))
	if kind != domain.InvitationSingleUse && kind != domain.InvitationUnlimited {
		return []string{`kind must be "single-use" or "unlimited"`}
	}
	r.Kind = string(kind)
	return nil
}

// CreateInvitation godoc
// @Summary Create an invitation for an event
// @Description Issues a new invitation code for the event. Only the event owner may issue invitations. If recipient_email is set, the code is emailed (best effort).
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body controllers.CreateInvitationRequest true "Invitation settings"
// @Success 201 {object} helpers.APIResponse "data: Invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [post]
func (c *InvitationController) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req CreateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	inv, err := c.Service.CreateInvitation(r.Context(), eventID, userID, domain.InvitationKind(req.Kind), req.Description, req.RecipientEmail)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the event owner may issue invitations")
		case errors.Is(err, domain.ErrCodeSpaceExhausted):
			c.Logger.ErrorContext(r.Context(), "invitation code space exhausted", "event_id", eventID)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not generate a unique code")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, inv)
}

// ListInvitations godoc
// @Summary List my invitations for an event
// @Description Returns the invitations the caller has issued for the event.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data: []Invitation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [get]
func (c *InvitationController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	invs, err := c.Service.ListForEvent(r.Context(), eventID, userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invs)
}

// RedeemInvitationRequest is the request body for POST /invitations/redeem.
type RedeemInvitationRequest struct {
	Code string `json:"code"`
}

// Validate implements helpers.Validator.
func (r *RedeemInvitationRequest) Validate() []string {
	code := strings.ToUpper(strings.TrimSpace(r.Code))
	if code == "" {
		return []string{"code is required"}
	}
	if !invitationCodeRegex.MatchString(code) {
		return []string{"code must be 8 characters from A-Z and 0-9"}
	}
	r.Code = code
	return nil
}

// RedeemInvitation godoc
// @Summary Redeem an invitation code
// @Description Consumes the invitation and joins the caller to its event. Redeeming a code for an event the caller already participates in succeeds with new_participant=false.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.RedeemInvitationRequest true "Invitation code"
// @Success 200 {object} helpers.APIResponse "data: RedemptionResult"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (invalid code)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (invitation exhausted)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/redeem [post]
func (c *InvitationController) RedeemInvitation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req RedeemInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Service.Redeem(r.Context(), req.Code, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invalid invitation code")
		case errors.Is(err, domain.ErrInvitationExhausted):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "invitation has no remaining uses")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// DeleteInvitation godoc
// @Summary Delete an invitation
// @Description Deletes the invitation. Only the issuer may delete it.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param code path string true "Invitation code"
// @Success 204 "deleted"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{code} [delete]
func (c *InvitationController) DeleteInvitation(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(r.PathValue("code")))
	if code == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing code")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.DeleteInvitation(r.Context(), code, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the issuer may delete an invitation")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
