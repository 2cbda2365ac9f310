package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"roomscheduler/internal/domain"
)

type venueService struct {
	venueRepo domain.VenueRepository
	roomRepo  domain.RoomRepository
	eventRepo domain.EventRepository
	logger    *slog.Logger
}

// NewVenueService creates a VenueService with the given repositories.
func NewVenueService(
	venueRepo domain.VenueRepository,
	roomRepo domain.RoomRepository,
	eventRepo domain.EventRepository,
	logger *slog.Logger,
) domain.VenueService {
	return &venueService{
		venueRepo: venueRepo,
		roomRepo:  roomRepo,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (s *venueService) CreateVenue(ctx context.Context, venue *domain.Venue) error {
	if venue.Name == "" {
		return fmt.Errorf("venue name is required")
	}
	if venue.CreatedBy == "" {
		return fmt.Errorf("venue creator is required")
	}
	venue.ID = uuid.NewString()
	now := time.Now().UTC()
	venue.CreatedAt = now
	venue.UpdatedAt = now
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (s *venueService) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) ListVenues(ctx context.Context, params domain.PaginationParams) ([]*domain.Venue, int, error) {
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list venues: %w", err)
	}
	total := len(venues)
	offset := params.Offset()
	if offset >= total {
		return []*domain.Venue{}, total, nil
	}
	end := offset + params.PageSize
	if params.PageSize <= 0 || end > total {
		end = total
	}
	return venues[offset:end], total, nil
}

// GetDeletionInfo runs the referential-integrity guard: two fresh index scans,
// one for events referencing the venue and one for dependent rooms. Events
// block deletion; rooms are cascade targets. The verdict is advisory — it is
// re-derived at deletion time rather than cached, since dependents can change
// between the check and the delete.
func (s *venueService) GetDeletionInfo(ctx context.Context, venueID string) (*domain.VenueDeletionInfo, error) {
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}

	events, err := s.eventRepo.ListByVenueID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("list events by venue: %w", err)
	}
	rooms, err := s.roomRepo.ListByVenueID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("list rooms by venue: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	return &domain.VenueDeletionInfo{
		BlockingEvents: events,
		DependentRooms: rooms,
		Deletable:      len(events) == 0,
	}, nil
}

// DeleteVenue deletes the venue and cascades over its rooms.
//
// Room deletions are best effort: one failed room does not abort the rest,
// and failures are reported back rather than dropped. The venue itself is
// deleted last so a partial cascade never leaves orphan rooms pointing at a
// missing venue.
func (s *venueService) DeleteVenue(ctx context.Context, venueID, requesterID string, force bool) (*domain.VenueDeleteResult, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	if venue.CreatedBy != requesterID {
		return nil, domain.ErrForbidden
	}

	// Fresh guard pass against live state; the advisory GetDeletionInfo
	// result a client may hold is not trusted here.
	info, err := s.GetDeletionInfo(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if !info.Deletable && !force {
		return nil, &domain.VenueBlockedError{Events: info.BlockingEvents}
	}

	result := &domain.VenueDeleteResult{
		DeletedRoomIDs: []string{},
		FailedRoomIDs:  []string{},
	}
	for _, room := range info.DependentRooms {
		if err := s.roomRepo.Delete(ctx, room.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("room deletion failed during venue cascade",
				"venue_id", venueID, "room_id", room.ID, "err", err)
			result.FailedRoomIDs = append(result.FailedRoomIDs, room.ID)
			continue
		}
		result.DeletedRoomIDs = append(result.DeletedRoomIDs, room.ID)
	}

	if err := s.venueRepo.Delete(ctx, venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Someone else deleted it mid-cascade; the rooms are gone either
			// way, so report what we cleaned up.
			return result, nil
		}
		return nil, fmt.Errorf("delete venue: %w", err)
	}
	return result, nil
}
