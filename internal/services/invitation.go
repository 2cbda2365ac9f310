package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"roomscheduler/internal/domain"
)

const (
	invitationCodeLength = 8
	// maxCodeAttempts bounds the generate-check-retry loop. Each attempt
	// costs a store round trip, so an unbounded loop under a store outage
	// would hang forever.
	maxCodeAttempts = 10
)

var invitationCodeAlphabet = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// generateInvitationCode produces a random 8-character code from [A-Z0-9].
// Uniqueness is not guaranteed here; the creation loop enforces it against
// the store.
func generateInvitationCode() (string, error) {
	b := make([]rune, invitationCodeLength)
	max := big.NewInt(int64(len(invitationCodeAlphabet)))
	for i := 0; i < invitationCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = invitationCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

type invitationService struct {
	invitationRepo  domain.InvitationRepository
	participantRepo domain.ParticipantRepository
	eventRepo       domain.EventRepository
	userRepo        domain.UserRepository
	emailService    domain.EmailService
	logger          *slog.Logger
}

// NewInvitationService creates an InvitationService with the given
// repositories. emailService may be nil; invitation emails are then skipped.
func NewInvitationService(
	invitationRepo domain.InvitationRepository,
	participantRepo domain.ParticipantRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.InvitationService {
	return &invitationService{
		invitationRepo:  invitationRepo,
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		emailService:    emailService,
		logger:          logger,
	}
}

func (s *invitationService) CreateInvitation(ctx context.Context, eventID, issuerID string, kind domain.InvitationKind, description, recipientEmail string) (*domain.Invitation, error) {
	if kind != domain.InvitationSingleUse && kind != domain.InvitationUnlimited {
		return nil, fmt.Errorf("unknown invitation kind %q", kind)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != issuerID {
		return nil, domain.ErrForbidden
	}

	inv, err := s.createWithUniqueCode(ctx, eventID, issuerID, kind, description)
	if err != nil {
		return nil, err
	}

	if recipientEmail != "" && s.emailService != nil {
		issuer, err := s.userRepo.GetByID(ctx, issuerID)
		inviterName := ""
		if err == nil {
			inviterName = issuer.Name
		}
		data := &domain.InvitationEmailData{
			Email:       recipientEmail,
			Code:        inv.Code,
			EventName:   event.Name,
			InviterName: inviterName,
			SingleUse:   kind == domain.InvitationSingleUse,
		}
		// Mail delivery is best effort; the invitation already exists.
		if err := s.emailService.SendInvitation(ctx, data); err != nil {
			s.logger.Warn("invitation email failed", "code", inv.Code, "err", err)
		}
	}

	return inv, nil
}

// createWithUniqueCode runs the generate-check-retry loop: generate a
// candidate, look it up, then conditionally insert. The insert can still lose
// a last-moment race; that also counts as a miss and the whole attempt
// repeats. After maxCodeAttempts the loop gives up with ErrCodeSpaceExhausted.
func (s *invitationService) createWithUniqueCode(ctx context.Context, eventID, issuerID string, kind domain.InvitationKind, description string) (*domain.Invitation, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateInvitationCode()
		if err != nil {
			return nil, fmt.Errorf("generate invitation code: %w", err)
		}

		_, err = s.invitationRepo.GetByCode(ctx, code)
		if err == nil {
			continue // collision
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check invitation code: %w", err)
		}

		inv := domain.NewInvitation(code, eventID, issuerID, kind, description, time.Now().UTC())
		if err := s.invitationRepo.Create(ctx, inv); err != nil {
			if errors.Is(err, domain.ErrCodeExists) {
				continue
			}
			return nil, fmt.Errorf("create invitation: %w", err)
		}
		return inv, nil
	}
	return nil, domain.ErrCodeSpaceExhausted
}

func (s *invitationService) ListForEvent(ctx context.Context, eventID, issuerID string) ([]*domain.Invitation, error) {
	invs, err := s.invitationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	// Callers only see invitations they issued.
	mine := []*domain.Invitation{}
	for _, inv := range invs {
		if inv.CreatedBy == issuerID {
			mine = append(mine, inv)
		}
	}
	return mine, nil
}

// Redeem consumes the invitation, then registers the user as a participant.
// The decrement comes first: a crash between the two steps leaves a consumed
// invitation with no participant, never a single-use code that admits more
// than one user.
func (s *invitationService) Redeem(ctx context.Context, code, userID string) (*domain.RedemptionResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	inv, err := s.invitationRepo.TryRedeem(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvitationExhausted) {
			return nil, err
		}
		return nil, fmt.Errorf("redeem invitation: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	participant := &domain.Participant{
		EventID:   inv.EventID,
		UserID:    userID,
		UserName:  user.Name,
		UserEmail: user.Email,
		JoinedVia: code,
		JoinedAt:  time.Now().UTC(),
	}
	err = s.participantRepo.Add(ctx, participant)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyParticipant) {
			// Already a participant: the invitation was consumed anyway and
			// the user has access, so this is success. This also makes
			// client retries after a timeout safe.
			return &domain.RedemptionResult{EventID: inv.EventID, NewParticipant: false}, nil
		}
		// No compensation for the decrement; see the ordering note above.
		return nil, fmt.Errorf("add participant: %w", err)
	}

	return &domain.RedemptionResult{EventID: inv.EventID, NewParticipant: true}, nil
}

func (s *invitationService) DeleteInvitation(ctx context.Context, code, requesterID string) error {
	inv, err := s.invitationRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get invitation: %w", err)
	}
	// Plain read-compare; a delete race is harmless since a deleted
	// invitation is unusable, which is the desired end state anyway.
	if inv.CreatedBy != requesterID {
		return domain.ErrForbidden
	}
	if err := s.invitationRepo.Delete(ctx, code); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}
