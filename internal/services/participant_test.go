package services

import (
	"context"
	"errors"
	"testing"

	"roomscheduler/internal/domain"
)

func newParticipantFixture(t *testing.T) (domain.ParticipantService, *fakeParticipantRepo, *fakeEventRepo) {
	t.Helper()
	participantRepo := newFakeParticipantRepo()
	eventRepo := newFakeEventRepo()
	svc := NewParticipantService(participantRepo, eventRepo)
	eventRepo.items["E1"] = &domain.Event{ID: "E1", Name: "Quiz Night", OwnerID: "owner-1"}
	return svc, participantRepo, eventRepo
}

func TestParticipantAdd_Idempotent(t *testing.T) {
	_, repo, _ := newParticipantFixture(t)

	p := &domain.Participant{EventID: "E1", UserID: "U1", UserName: "Alice"}
	if err := repo.Add(context.Background(), p); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := repo.Add(context.Background(), p); !errors.Is(err, domain.ErrAlreadyParticipant) {
		t.Fatalf("expected ErrAlreadyParticipant, got %v", err)
	}
	list, _ := repo.ListByEventID(context.Background(), "E1")
	if len(list) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(list))
	}
}

func TestListEventParticipants_OwnerAndParticipantOnly(t *testing.T) {
	svc, repo, _ := newParticipantFixture(t)
	repo.items["E1/U1"] = &domain.Participant{EventID: "E1", UserID: "U1"}

	if _, err := svc.ListEventParticipants(context.Background(), "E1", "owner-1"); err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if _, err := svc.ListEventParticipants(context.Background(), "E1", "U1"); err != nil {
		t.Fatalf("participant list: %v", err)
	}
	if _, err := svc.ListEventParticipants(context.Background(), "E1", "stranger"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestListMyParticipations_SkipsDeletedEvents(t *testing.T) {
	svc, repo, eventRepo := newParticipantFixture(t)
	eventRepo.items["E2"] = &domain.Event{ID: "E2", Name: "Board Games", OwnerID: "owner-1"}
	repo.items["E1/U1"] = &domain.Participant{EventID: "E1", UserID: "U1"}
	repo.items["E2/U1"] = &domain.Participant{EventID: "E2", UserID: "U1"}
	repo.items["gone/U1"] = &domain.Participant{EventID: "gone", UserID: "U1"}

	result, err := svc.ListMyParticipations(context.Background(), "U1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 participations (deleted event skipped), got %d", len(result))
	}
	for _, pw := range result {
		if pw.Event == nil {
			t.Fatal("expected event to be joined")
		}
	}
}

func TestRemoveParticipant_OwnerOnlyAndIdempotent(t *testing.T) {
	svc, repo, _ := newParticipantFixture(t)
	repo.items["E1/U1"] = &domain.Participant{EventID: "E1", UserID: "U1"}

	if err := svc.RemoveParticipant(context.Background(), "E1", "U1", "stranger"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.RemoveParticipant(context.Background(), "E1", "U1", "owner-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// Removing again is not an error.
	if err := svc.RemoveParticipant(context.Background(), "E1", "U1", "owner-1"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}
