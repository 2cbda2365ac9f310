package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"roomscheduler/internal/domain"
)

// stubVenueService returns canned results per method.
type stubVenueService struct {
	createErr    error
	venue        *domain.Venue
	getErr       error
	venues       []*domain.Venue
	total        int
	listErr      error
	info         *domain.VenueDeletionInfo
	infoErr      error
	deleteResult *domain.VenueDeleteResult
	deleteErr    error
	gotForce     bool
}

func (s *stubVenueService) CreateVenue(ctx context.Context, venue *domain.Venue) error {
	return s.createErr
}

func (s *stubVenueService) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	return s.venue, s.getErr
}

func (s *stubVenueService) ListVenues(ctx context.Context, params domain.PaginationParams) ([]*domain.Venue, int, error) {
	return s.venues, s.total, s.listErr
}

func (s *stubVenueService) GetDeletionInfo(ctx context.Context, venueID string) (*domain.VenueDeletionInfo, error) {
	return s.info, s.infoErr
}

func (s *stubVenueService) DeleteVenue(ctx context.Context, venueID, requesterID string, force bool) (*domain.VenueDeleteResult, error) {
	s.gotForce = force
	return s.deleteResult, s.deleteErr
}

func TestDeleteVenueBlockedReturnsConflictWithEvents(t *testing.T) {
	blocked := &domain.VenueBlockedError{Events: []*domain.Event{{ID: "E1", Name: "Launch party"}}}
	svc := &stubVenueService{deleteErr: blocked}
	c := NewVenueController(testLogger(), svc)

	req := authedRequest(http.MethodDelete, "/venues/V1", "")
	req.SetPathValue("venueID", "V1")
	rec := httptest.NewRecorder()
	c.DeleteVenue(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec)
	apiErr, ok := envelope["error"].(map[string]any)
	if !ok {
		t.Fatalf("missing error object in %v", envelope)
	}
	details, ok := apiErr["details"].(map[string]any)
	if !ok {
		t.Fatalf("missing details in %v", apiErr)
	}
	events, ok := details["blocking_events"].([]any)
	if !ok || len(events) != 1 {
		t.Fatalf("blocking_events = %v, want one event", details["blocking_events"])
	}
}

func TestDeleteVenuePassesForceFlag(t *testing.T) {
	svc := &stubVenueService{deleteResult: &domain.VenueDeleteResult{}}
	c := NewVenueController(testLogger(), svc)

	req := authedRequest(http.MethodDelete, "/venues/V1?force=true", "")
	req.SetPathValue("venueID", "V1")
	rec := httptest.NewRecorder()
	c.DeleteVenue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !svc.gotForce {
		t.Error("force=true was not passed to the service")
	}
}

func TestDeleteVenueReportsCascadeResult(t *testing.T) {
	svc := &stubVenueService{deleteResult: &domain.VenueDeleteResult{
		DeletedRoomIDs: []string{"R1", "R2"},
		FailedRoomIDs:  []string{"R3"},
	}}
	c := NewVenueController(testLogger(), svc)

	req := authedRequest(http.MethodDelete, "/venues/V1", "")
	req.SetPathValue("venueID", "V1")
	rec := httptest.NewRecorder()
	c.DeleteVenue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	if got := data["deleted_room_ids"].([]any); len(got) != 2 {
		t.Errorf("deleted_room_ids = %v, want 2 entries", got)
	}
	if got := data["failed_room_ids"].([]any); len(got) != 1 {
		t.Errorf("failed_room_ids = %v, want 1 entry", got)
	}
}

func TestDeleteVenueStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"not creator", domain.ErrForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewVenueController(testLogger(), &stubVenueService{deleteErr: tc.err})
			req := authedRequest(http.MethodDelete, "/venues/V1", "")
			req.SetPathValue("venueID", "V1")
			rec := httptest.NewRecorder()
			c.DeleteVenue(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestGetDeletionInfo(t *testing.T) {
	svc := &stubVenueService{info: &domain.VenueDeletionInfo{
		BlockingEvents: []*domain.Event{{ID: "E1"}},
		DependentRooms: []*domain.Room{{ID: "R1"}},
		Deletable:      false,
	}}
	c := NewVenueController(testLogger(), svc)

	req := authedRequest(http.MethodGet, "/venues/V1/deletion-info", "")
	req.SetPathValue("venueID", "V1")
	rec := httptest.NewRecorder()
	c.GetDeletionInfo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	if data["deletable"] != false {
		t.Errorf("deletable = %v, want false", data["deletable"])
	}
}

func TestCreateVenueRequiresName(t *testing.T) {
	c := NewVenueController(testLogger(), &stubVenueService{})
	req := authedRequest(http.MethodPost, "/venues", `{"name":"  "}`)
	rec := httptest.NewRecorder()
	c.CreateVenue(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListVenuesIncludesPagination(t *testing.T) {
	svc := &stubVenueService{
		venues: []*domain.Venue{{ID: "V1"}, {ID: "V2"}},
		total:  12,
	}
	c := NewVenueController(testLogger(), svc)

	req := authedRequest(http.MethodGet, "/venues?page=2&page_size=2", "")
	rec := httptest.NewRecorder()
	c.ListVenues(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	meta := data["pagination"].(map[string]any)
	if meta["page"] != float64(2) || meta["total"] != float64(12) || meta["total_pages"] != float64(6) {
		t.Errorf("pagination = %v, want page 2, total 12, total_pages 6", meta)
	}
}
