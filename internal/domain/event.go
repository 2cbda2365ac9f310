package domain

import (
	"context"
	"time"
)

// Event represents a planned event. VenueID is optional: an event may exist
// without a venue.
// swagger:model Event
type Event struct {
	ID          string    `json:"id" dynamodbav:"id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description,omitempty" dynamodbav:"description"`
	Date        time.Time `json:"date" dynamodbav:"date"`
	VenueID     string    `json:"venue_id,omitempty" dynamodbav:"venueId,omitempty"`
	OwnerID     string    `json:"owner_id" dynamodbav:"ownerId"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updatedAt"`
}

// NewEvent returns a new Event owned by ownerID. ID is set by the service.
func NewEvent(name, description string, date time.Time, venueID, ownerID string, now time.Time) *Event {
	return &Event{
		Name:        name,
		Description: description,
		Date:        date,
		VenueID:     venueID,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EventWithParticipants bundles an event with its participant count.
type EventWithParticipants struct {
	Event            *Event `json:"event"`
	ParticipantCount int    `json:"participant_count"`
}

// EventDeleteResult reports the outcome of an event deletion cascade over the
// event's invitations and participation records. Failures are surfaced, not
// silently dropped.
// swagger:model EventDeleteResult
type EventDeleteResult struct {
	DeletedInvitationCodes []string `json:"deleted_invitation_codes"`
	FailedInvitationCodes  []string `json:"failed_invitation_codes"`
	RemovedParticipants    int      `json:"removed_participants"`
	FailedParticipants     int      `json:"failed_participants"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByVenueID(ctx context.Context, venueID string) ([]*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines event operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id string) (*EventWithParticipants, error)
	ListMyEvents(ctx context.Context, ownerID string) ([]*Event, error)
	// DeleteEvent deletes the event after a best-effort cascade over its
	// invitations and participation records. Only the owner may delete.
	DeleteEvent(ctx context.Context, eventID, requesterID string) (*EventDeleteResult, error)
}
