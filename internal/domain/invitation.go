package domain

import (
	"context"
	"errors"
	"time"
)

// InvitationKind distinguishes single-use from unlimited invitations.
type InvitationKind string

const (
	InvitationSingleUse InvitationKind = "single-use"
	InvitationUnlimited InvitationKind = "unlimited"
)

// UnlimitedUses is the RemainingUses sentinel for unlimited invitations.
const UnlimitedUses = -1

// Sentinel errors for invitation operations.
var (
	// ErrInvitationExhausted is returned when a single-use invitation has no
	// remaining uses. This is a final business outcome, not a storage fault.
	ErrInvitationExhausted = errors.New("invitation exhausted")
	// ErrCodeExists is returned by the repository when a conditional insert
	// loses to an existing code. The service regenerates and retries.
	ErrCodeExists = errors.New("invitation code already exists")
	// ErrCodeSpaceExhausted is returned when code generation gives up after
	// the bounded number of generate-check-retry attempts.
	ErrCodeSpaceExhausted = errors.New("could not generate a unique invitation code")
)

// Invitation grants access to an event via a short shareable code.
// The code is the primary key and immutable once created.
// swagger:model Invitation
type Invitation struct {
	Code          string         `json:"code" dynamodbav:"code"`
	EventID       string         `json:"event_id" dynamodbav:"eventId"`
	CreatedBy     string         `json:"created_by" dynamodbav:"createdBy"`
	Kind          InvitationKind `json:"kind" dynamodbav:"kind"`
	RemainingUses int            `json:"remaining_uses" dynamodbav:"remainingUses"`
	Description   string         `json:"description,omitempty" dynamodbav:"description"`
	CreatedAt     time.Time      `json:"created_at" dynamodbav:"createdAt"`
	UpdatedAt     time.Time      `json:"updated_at" dynamodbav:"updatedAt"`
}

// NewInvitation returns an Invitation for the given event and issuer.
// Single-use invitations start with one remaining use.
func NewInvitation(code, eventID, createdBy string, kind InvitationKind, description string, now time.Time) *Invitation {
	remaining := UnlimitedUses
	if kind == InvitationSingleUse {
		remaining = 1
	}
	return &Invitation{
		Code:          code,
		EventID:       eventID,
		CreatedBy:     createdBy,
		Kind:          kind,
		RemainingUses: remaining,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// RedemptionResult is the outcome of a successful redemption.
// swagger:model RedemptionResult
type RedemptionResult struct {
	EventID string `json:"event_id"`
	// NewParticipant is false when the redeemer was already a participant of
	// the event; the invitation is still consumed either way.
	NewParticipant bool `json:"new_participant"`
}

// InvitationRepository defines storage operations for invitations.
//
// TryRedeem is the atomicity primitive of the subsystem: for a single-use
// invitation it must decrement RemainingUses with the storage-level
// precondition "current value > 0" in a single conditional write, never as a
// read-then-write pair. It returns the post-decrement snapshot,
// ErrInvitationExhausted when the precondition fails, or ErrNotFound.
// For unlimited invitations it performs no write.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByCode(ctx context.Context, code string) (*Invitation, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Invitation, error)
	TryRedeem(ctx context.Context, code string) (*Invitation, error)
	Delete(ctx context.Context, code string) error
}

// InvitationService defines invitation lifecycle operations, including the
// redemption orchestration across the invitation store and the participation
// register.
type InvitationService interface {
	// CreateInvitation issues a new invitation for the event. recipientEmail
	// is optional; when set, the code is mailed to it (best effort).
	CreateInvitation(ctx context.Context, eventID, issuerID string, kind InvitationKind, description, recipientEmail string) (*Invitation, error)
	// ListForEvent returns invitations for the event issued by issuerID.
	ListForEvent(ctx context.Context, eventID, issuerID string) ([]*Invitation, error)
	// Redeem consumes the invitation and adds the user as a participant of
	// the invitation's event. Returns ErrNotFound for unknown codes and
	// ErrInvitationExhausted for consumed single-use codes.
	Redeem(ctx context.Context, code, userID string) (*RedemptionResult, error)
	// DeleteInvitation removes the invitation; only the issuer may delete.
	DeleteInvitation(ctx context.Context, code, requesterID string) error
}
