package domain

import (
	"context"
	"time"
)

// Room represents a bookable room inside a venue. A room always references
// exactly one venue, set at creation and immutable.
// swagger:model Room
type Room struct {
	ID        string    `json:"id" dynamodbav:"id"`
	VenueID   string    `json:"venue_id" dynamodbav:"venueId"`
	Name      string    `json:"name" dynamodbav:"name"`
	Capacity  int       `json:"capacity,omitempty" dynamodbav:"capacity"`
	Notes     string    `json:"notes,omitempty" dynamodbav:"notes"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updatedAt"`
}

// NewRoom returns a new Room in the given venue. ID is set by the service.
func NewRoom(venueID, name string, capacity int, notes string, now time.Time) *Room {
	return &Room{
		VenueID:   venueID,
		Name:      name,
		Capacity:  capacity,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RoomRepository defines the interface for room storage
type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	ListByVenueID(ctx context.Context, venueID string) ([]*Room, error)
	Delete(ctx context.Context, id string) error
}

// RoomService defines room operations.
type RoomService interface {
	// CreateRoom creates a room under the venue. The venue must exist and
	// the caller must be its creator.
	CreateRoom(ctx context.Context, venueID, requesterID string, room *Room) error
	GetRoom(ctx context.Context, id string) (*Room, error)
	ListVenueRooms(ctx context.Context, venueID string) ([]*Room, error)
	// DeleteRoom deletes a single room. Only the venue creator may delete.
	DeleteRoom(ctx context.Context, roomID, requesterID string) error
}
