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

type eventService struct {
	eventRepo       domain.EventRepository
	venueRepo       domain.VenueRepository
	invitationRepo  domain.InvitationRepository
	participantRepo domain.ParticipantRepository
	logger          *slog.Logger
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(
	eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	invitationRepo domain.InvitationRepository,
	participantRepo domain.ParticipantRepository,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		venueRepo:       venueRepo,
		invitationRepo:  invitationRepo,
		participantRepo: participantRepo,
		logger:          logger,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if event.Name == "" {
		return fmt.Errorf("event name is required")
	}
	if event.OwnerID == "" {
		return fmt.Errorf("event owner is required")
	}
	if event.VenueID != "" {
		if _, err := s.venueRepo.GetByID(ctx, event.VenueID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("venue %s: %w", event.VenueID, domain.ErrNotFound)
			}
			return fmt.Errorf("get venue: %w", err)
		}
	}
	event.ID = uuid.NewString()
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.EventWithParticipants, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	count, err := s.participantRepo.Count(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}
	return &domain.EventWithParticipants{Event: event, ParticipantCount: count}, nil
}

func (s *eventService) ListMyEvents(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// DeleteEvent removes the event after a best-effort cascade over its
// invitations and participation records. Cascade failures are reported, not
// fatal; the event is deleted last so retrying the whole operation remains
// possible after a partial cleanup.
func (s *eventService) DeleteEvent(ctx context.Context, eventID, requesterID string) (*domain.EventDeleteResult, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != requesterID {
		return nil, domain.ErrForbidden
	}

	result := &domain.EventDeleteResult{
		DeletedInvitationCodes: []string{},
		FailedInvitationCodes:  []string{},
	}

	invs, err := s.invitationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	for _, inv := range invs {
		if err := s.invitationRepo.Delete(ctx, inv.Code); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("invitation deletion failed during event cascade",
				"event_id", eventID, "code", inv.Code, "err", err)
			result.FailedInvitationCodes = append(result.FailedInvitationCodes, inv.Code)
			continue
		}
		result.DeletedInvitationCodes = append(result.DeletedInvitationCodes, inv.Code)
	}

	participants, err := s.participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	for _, p := range participants {
		if err := s.participantRepo.Remove(ctx, eventID, p.UserID); err != nil {
			s.logger.Warn("participant removal failed during event cascade",
				"event_id", eventID, "user_id", p.UserID, "err", err)
			result.FailedParticipants++
			continue
		}
		result.RemovedParticipants++
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return result, nil
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	return result, nil
}
