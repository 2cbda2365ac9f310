package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomscheduler/internal/domain"
)

type eventFixture struct {
	svc             domain.EventService
	eventRepo       *fakeEventRepo
	venueRepo       *fakeVenueRepo
	invitationRepo  *fakeInvitationRepo
	participantRepo *fakeParticipantRepo
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()
	f := &eventFixture{
		eventRepo:       newFakeEventRepo(),
		venueRepo:       newFakeVenueRepo(),
		invitationRepo:  newFakeInvitationRepo(),
		participantRepo: newFakeParticipantRepo(),
	}
	f.svc = NewEventService(f.eventRepo, f.venueRepo, f.invitationRepo, f.participantRepo, testLogger())
	return f
}

func TestCreateEvent_AssignsID(t *testing.T) {
	f := newEventFixture(t)

	event := domain.NewEvent("Quiz Night", "", time.Now(), "", "owner-1", time.Now())
	if err := f.svc.CreateEvent(context.Background(), event); err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
	if _, err := f.eventRepo.GetByID(context.Background(), event.ID); err != nil {
		t.Fatalf("event not stored: %v", err)
	}
}

func TestCreateEvent_UnknownVenueRejected(t *testing.T) {
	f := newEventFixture(t)

	event := domain.NewEvent("Quiz Night", "", time.Now(), "missing-venue", "owner-1", time.Now())
	if err := f.svc.CreateEvent(context.Background(), event); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetEvent_IncludesParticipantCount(t *testing.T) {
	f := newEventFixture(t)
	f.eventRepo.items["E1"] = &domain.Event{ID: "E1", Name: "Quiz Night", OwnerID: "owner-1"}
	f.participantRepo.items["E1/U1"] = &domain.Participant{EventID: "E1", UserID: "U1"}
	f.participantRepo.items["E1/U2"] = &domain.Participant{EventID: "E1", UserID: "U2"}

	got, err := f.svc.GetEvent(context.Background(), "E1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ParticipantCount != 2 {
		t.Fatalf("expected 2 participants, got %d", got.ParticipantCount)
	}
}

func TestDeleteEvent_CascadesInvitationsAndParticipants(t *testing.T) {
	f := newEventFixture(t)
	now := time.Now()
	f.eventRepo.items["E1"] = &domain.Event{ID: "E1", Name: "Quiz Night", OwnerID: "owner-1"}
	f.invitationRepo.items["AAAA1111"] = domain.NewInvitation("AAAA1111", "E1", "owner-1", domain.InvitationSingleUse, "", now)
	f.invitationRepo.items["BBBB2222"] = domain.NewInvitation("BBBB2222", "E1", "owner-1", domain.InvitationUnlimited, "", now)
	f.participantRepo.items["E1/U1"] = &domain.Participant{EventID: "E1", UserID: "U1"}

	result, err := f.svc.DeleteEvent(context.Background(), "E1", "owner-1")
	if err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if len(result.DeletedInvitationCodes) != 2 || len(result.FailedInvitationCodes) != 0 {
		t.Fatalf("unexpected invitation cascade result %+v", result)
	}
	if result.RemovedParticipants != 1 || result.FailedParticipants != 0 {
		t.Fatalf("unexpected participant cascade result %+v", result)
	}
	if _, err := f.eventRepo.GetByID(context.Background(), "E1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("event should be gone, got %v", err)
	}
	if _, err := f.invitationRepo.GetByCode(context.Background(), "AAAA1111"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatal("invitations should be gone")
	}
}

func TestDeleteEvent_PartialParticipantFailure(t *testing.T) {
	f := newEventFixture(t)
	f.eventRepo.items["E1"] = &domain.Event{ID: "E1", Name: "Quiz Night", OwnerID: "owner-1"}
	f.participantRepo.items["E1/U1"] = &domain.Participant{EventID: "E1", UserID: "U1"}
	f.participantRepo.removeErr = errStorage

	result, err := f.svc.DeleteEvent(context.Background(), "E1", "owner-1")
	if err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if result.FailedParticipants != 1 {
		t.Fatalf("expected 1 failed participant removal, got %d", result.FailedParticipants)
	}
	// The cascade is best effort; the event is still removed.
	if _, err := f.eventRepo.GetByID(context.Background(), "E1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("event should be gone, got %v", err)
	}
}

func TestDeleteEvent_OnlyOwner(t *testing.T) {
	f := newEventFixture(t)
	f.eventRepo.items["E1"] = &domain.Event{ID: "E1", Name: "Quiz Night", OwnerID: "owner-1"}

	if _, err := f.svc.DeleteEvent(context.Background(), "E1", "intruder"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
