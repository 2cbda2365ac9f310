package services

import (
	"context"
	"testing"
	"time"

	"roomscheduler/internal/domain"
)

func roomFixture(t *testing.T) (domain.RoomService, *fakeVenueRepo, *fakeRoomRepo) {
	t.Helper()
	venueRepo := newFakeVenueRepo()
	roomRepo := newFakeRoomRepo()
	venue := domain.NewVenue("Monkey Puzzle", "1 High St", "", "owner-1", time.Now().UTC())
	venue.ID = "V1"
	if err := venueRepo.Create(context.Background(), venue); err != nil {
		t.Fatalf("seed venue: %v", err)
	}
	return NewRoomService(roomRepo, venueRepo), venueRepo, roomRepo
}

func TestCreateRoomAssignsIDAndVenue(t *testing.T) {
	svc, _, roomRepo := roomFixture(t)

	room := &domain.Room{Name: "Main hall", Capacity: 40}
	if err := svc.CreateRoom(context.Background(), "V1", "owner-1", room); err != nil {
		t.Fatalf("create room: %v", err)
	}
	if room.ID == "" {
		t.Fatal("expected an assigned room ID")
	}
	stored, err := roomRepo.GetByID(context.Background(), room.ID)
	if err != nil {
		t.Fatalf("get stored room: %v", err)
	}
	if stored.VenueID != "V1" {
		t.Fatalf("stored venue ID = %q, want V1", stored.VenueID)
	}
}

func TestCreateRoomOnlyVenueCreator(t *testing.T) {
	svc, _, _ := roomFixture(t)

	err := svc.CreateRoom(context.Background(), "V1", "someone-else", &domain.Room{Name: "Annex"})
	if err != domain.ErrForbidden {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestCreateRoomUnknownVenue(t *testing.T) {
	svc, _, _ := roomFixture(t)

	err := svc.CreateRoom(context.Background(), "no-such-venue", "owner-1", &domain.Room{Name: "Annex"})
	if err != domain.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListVenueRoomsUnknownVenue(t *testing.T) {
	svc, _, _ := roomFixture(t)

	if _, err := svc.ListVenueRooms(context.Background(), "no-such-venue"); err != domain.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRoomOnlyVenueCreator(t *testing.T) {
	svc, _, _ := roomFixture(t)

	room := &domain.Room{Name: "Main hall"}
	if err := svc.CreateRoom(context.Background(), "V1", "owner-1", room); err != nil {
		t.Fatalf("create room: %v", err)
	}
	if err := svc.DeleteRoom(context.Background(), room.ID, "someone-else"); err != domain.ErrForbidden {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if err := svc.DeleteRoom(context.Background(), room.ID, "owner-1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestDeleteOrphanRoomAfterVenueGone(t *testing.T) {
	svc, venueRepo, _ := roomFixture(t)

	room := &domain.Room{Name: "Main hall"}
	if err := svc.CreateRoom(context.Background(), "V1", "owner-1", room); err != nil {
		t.Fatalf("create room: %v", err)
	}
	if err := venueRepo.Delete(context.Background(), "V1"); err != nil {
		t.Fatalf("delete venue: %v", err)
	}

	// The venue record is gone, so there is no creator left to check against.
	if err := svc.DeleteRoom(context.Background(), room.ID, "anyone"); err != nil {
		t.Fatalf("orphan delete: %v", err)
	}
}
