package domain

import (
	"context"
	"fmt"
	"time"
)

// Venue represents a place that hosts rooms and events.
// swagger:model Venue
type Venue struct {
	ID          string    `json:"id" dynamodbav:"id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Address     string    `json:"address,omitempty" dynamodbav:"address"`
	Description string    `json:"description,omitempty" dynamodbav:"description"`
	CreatedBy   string    `json:"created_by" dynamodbav:"createdBy"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updatedAt"`
}

// NewVenue returns a new Venue owned by createdBy. ID is set by the service.
func NewVenue(name, address, description, createdBy string, now time.Time) *Venue {
	return &Venue{
		Name:        name,
		Address:     address,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// VenueDeletionInfo is the referential-integrity guard's verdict for a venue.
// Deletable is true iff no events reference the venue; dependent rooms never
// block deletion, they are cascade targets.
// swagger:model VenueDeletionInfo
type VenueDeletionInfo struct {
	BlockingEvents []*Event `json:"blocking_events"`
	DependentRooms []*Room  `json:"dependent_rooms"`
	Deletable      bool     `json:"deletable"`
}

// VenueDeleteResult reports the outcome of a cascading venue deletion.
// FailedRoomIDs lists rooms the cascade found but could not delete; they are
// surfaced for operator visibility rather than silently dropped.
// swagger:model VenueDeleteResult
type VenueDeleteResult struct {
	DeletedRoomIDs []string `json:"deleted_room_ids"`
	FailedRoomIDs  []string `json:"failed_room_ids"`
}

// VenueBlockedError is returned when a venue cannot be deleted because live
// events still reference it and force was not set.
type VenueBlockedError struct {
	Events []*Event
}

func (e *VenueBlockedError) Error() string {
	return fmt.Sprintf("venue has %d referencing event(s)", len(e.Events))
}

// VenueRepository defines the interface for venue storage
type VenueRepository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
	Delete(ctx context.Context, id string) error
}

// VenueService defines venue operations including the referential-integrity
// guard and the cascading deleter.
type VenueService interface {
	CreateVenue(ctx context.Context, venue *Venue) error
	GetVenue(ctx context.Context, id string) (*Venue, error)
	ListVenues(ctx context.Context, params PaginationParams) ([]*Venue, int, error)
	// GetDeletionInfo runs the guard: fresh index scans for referencing
	// events and dependent rooms. Advisory only; DeleteVenue re-derives it.
	GetDeletionInfo(ctx context.Context, venueID string) (*VenueDeletionInfo, error)
	// DeleteVenue deletes the venue and cascades over its rooms. Returns a
	// *VenueBlockedError when events reference the venue and force is false.
	// Only the creator may delete.
	DeleteVenue(ctx context.Context, venueID, requesterID string, force bool) (*VenueDeleteResult, error)
}
