package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyParticipant is returned by ParticipantRepository.Add when a record
// for the (event, user) pair already exists. Callers treat it as "already a
// participant", not as a failure; this is what makes redemption retries safe.
var ErrAlreadyParticipant = errors.New("already a participant")

// Participant records that a user participates in an event. The (EventID,
// UserID) pair is the composite identity; a user participates at most once.
// Name and email are denormalized at join time.
// swagger:model Participant
type Participant struct {
	EventID   string    `json:"event_id" dynamodbav:"eventId"`
	UserID    string    `json:"user_id" dynamodbav:"userId"`
	UserName  string    `json:"user_name" dynamodbav:"userName"`
	UserEmail string    `json:"user_email" dynamodbav:"userEmail"`
	// JoinedVia is the invitation code that was redeemed, or empty for
	// owner-implied participation.
	JoinedVia string    `json:"joined_via,omitempty" dynamodbav:"joinedVia"`
	JoinedAt  time.Time `json:"joined_at" dynamodbav:"joinedAt"`
}

// ParticipationWithEvent bundles a participation record with its event.
type ParticipationWithEvent struct {
	Participant *Participant `json:"participant"`
	Event       *Event       `json:"event"`
}

// ParticipantRepository defines storage operations for participation records.
// Add must be a conditional insert with precondition "record does not exist";
// a precondition violation surfaces as ErrAlreadyParticipant. Remove is
// idempotent: removing a missing record is not an error.
type ParticipantRepository interface {
	Add(ctx context.Context, p *Participant) error
	Remove(ctx context.Context, eventID, userID string) error
	ListByEventID(ctx context.Context, eventID string) ([]*Participant, error)
	ListByUserID(ctx context.Context, userID string) ([]*Participant, error)
	Count(ctx context.Context, eventID string) (int, error)
	Exists(ctx context.Context, eventID, userID string) (bool, error)
}

// ParticipantService defines participant-facing operations.
type ParticipantService interface {
	// ListEventParticipants returns the participants of an event. Only the
	// event owner or a participant may view the list.
	ListEventParticipants(ctx context.Context, eventID, callerID string) ([]*Participant, error)
	// ListMyParticipations returns the caller's participations joined with
	// their events.
	ListMyParticipations(ctx context.Context, userID string) ([]*ParticipationWithEvent, error)
	// RemoveParticipant removes a participant from an event. Only the event
	// owner may remove participants.
	RemoveParticipant(ctx context.Context, eventID, userID, requesterID string) error
}
