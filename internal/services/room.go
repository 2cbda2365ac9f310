package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roomscheduler/internal/domain"
)

type roomService struct {
	roomRepo  domain.RoomRepository
	venueRepo domain.VenueRepository
}

// NewRoomService creates a RoomService with the given repositories.
func NewRoomService(roomRepo domain.RoomRepository, venueRepo domain.VenueRepository) domain.RoomService {
	return &roomService{roomRepo: roomRepo, venueRepo: venueRepo}
}

func (s *roomService) CreateRoom(ctx context.Context, venueID, requesterID string, room *domain.Room) error {
	if room.Name == "" {
		return fmt.Errorf("room name is required")
	}
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get venue: %w", err)
	}
	if venue.CreatedBy != requesterID {
		return domain.ErrForbidden
	}

	room.ID = uuid.NewString()
	room.VenueID = venueID
	now := time.Now().UTC()
	room.CreatedAt = now
	room.UpdatedAt = now
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

func (s *roomService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

func (s *roomService) ListVenueRooms(ctx context.Context, venueID string) ([]*domain.Room, error) {
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	rooms, err := s.roomRepo.ListByVenueID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	return rooms, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, roomID, requesterID string) error {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get room: %w", err)
	}
	venue, err := s.venueRepo.GetByID(ctx, room.VenueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Venue already gone; let the room's owner check fall through to
			// the delete so stragglers can still be cleaned up.
			venue = nil
		} else {
			return fmt.Errorf("get venue: %w", err)
		}
	}
	if venue != nil && venue.CreatedBy != requesterID {
		return domain.ErrForbidden
	}
	if err := s.roomRepo.Delete(ctx, roomID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}
