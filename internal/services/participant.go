package services

import (
	"context"
	"errors"
	"fmt"

	"roomscheduler/internal/domain"
)

type participantService struct {
	participantRepo domain.ParticipantRepository
	eventRepo       domain.EventRepository
}

// NewParticipantService creates a ParticipantService with the given repositories.
func NewParticipantService(participantRepo domain.ParticipantRepository, eventRepo domain.EventRepository) domain.ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
	}
}

func (s *participantService) ListEventParticipants(ctx context.Context, eventID, callerID string) ([]*domain.Participant, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Allow event owner or a participant.
	if event.OwnerID != callerID {
		ok, err := s.participantRepo.Exists(ctx, eventID, callerID)
		if err != nil {
			return nil, fmt.Errorf("check participation: %w", err)
		}
		if !ok {
			return nil, domain.ErrForbidden
		}
	}

	participants, err := s.participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if participants == nil {
		participants = []*domain.Participant{}
	}
	return participants, nil
}

func (s *participantService) ListMyParticipations(ctx context.Context, userID string) ([]*domain.ParticipationWithEvent, error) {
	participations, err := s.participantRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	if len(participations) == 0 {
		return []*domain.ParticipationWithEvent{}, nil
	}

	// Fetch events one by one (N+1). This keeps the implementation simple;
	// we can optimize later if needed.
	eventsByID := make(map[string]*domain.Event)
	result := []*domain.ParticipationWithEvent{}

	for _, p := range participations {
		ev, ok := eventsByID[p.EventID]
		if !ok {
			ev, err = s.eventRepo.GetByID(ctx, p.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Event deleted but participation remains; skip this entry.
					continue
				}
				return nil, fmt.Errorf("get event for participation: %w", err)
			}
			eventsByID[p.EventID] = ev
		}
		result = append(result, &domain.ParticipationWithEvent{
			Participant: p,
			Event:       ev,
		})
	}
	return result, nil
}

func (s *participantService) RemoveParticipant(ctx context.Context, eventID, userID, requesterID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != requesterID {
		return domain.ErrForbidden
	}
	// Remove is idempotent at the register level; no existence check needed.
	if err := s.participantRepo.Remove(ctx, eventID, userID); err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	return nil
}
