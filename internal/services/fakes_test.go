package services

import (
	"context"
	"errors"
	"sync"

	"roomscheduler/internal/domain"
)

// errStorage stands in for a store-level fault, distinct from any business
// outcome sentinel.
var errStorage = errors.New("storage unavailable")

// The fakes below reproduce the store's conditional-write semantics behind a
// mutex, so concurrency tests exercise real races: conditional insert for
// participants, conditional decrement for invitations.

type fakeInvitationRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Invitation

	createErr error
	redeemErr error
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{items: make(map[string]*domain.Invitation)}
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.items[inv.Code]; ok {
		return domain.ErrCodeExists
	}
	cp := *inv
	f.items[inv.Code] = &cp
	return nil
}

func (f *fakeInvitationRepo) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.items[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvitationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Invitation{}
	for _, inv := range f.items {
		if inv.EventID == eventID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) TryRedeem(ctx context.Context, code string) (*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.redeemErr != nil {
		return nil, f.redeemErr
	}
	inv, ok := f.items[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if inv.Kind == domain.InvitationUnlimited {
		cp := *inv
		return &cp, nil
	}
	if inv.RemainingUses <= 0 {
		return nil, domain.ErrInvitationExhausted
	}
	inv.RemainingUses--
	cp := *inv
	return &cp, nil
}

func (f *fakeInvitationRepo) Delete(ctx context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[code]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, code)
	return nil
}

type fakeParticipantRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Participant

	addErr    error
	removeErr error
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{items: make(map[string]*domain.Participant)}
}

func participantFakeKey(eventID, userID string) string {
	return eventID + "/" + userID
}

func (f *fakeParticipantRepo) Add(ctx context.Context, p *domain.Participant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	key := participantFakeKey(p.EventID, p.UserID)
	if _, ok := f.items[key]; ok {
		return domain.ErrAlreadyParticipant
	}
	cp := *p
	f.items[key] = &cp
	return nil
}

func (f *fakeParticipantRepo) Remove(ctx context.Context, eventID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.items, participantFakeKey(eventID, userID))
	return nil
}

func (f *fakeParticipantRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Participant{}
	for _, p := range f.items {
		if p.EventID == eventID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Participant{}
	for _, p := range f.items {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) Count(ctx context.Context, eventID string) (int, error) {
	list, _ := f.ListByEventID(ctx, eventID)
	return len(list), nil
}

func (f *fakeParticipantRepo) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[participantFakeKey(eventID, userID)]
	return ok, nil
}

type fakeEventRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Event

	deleteErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{items: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *event
	f.items[event.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ev
	return &cp, nil
}

func (f *fakeEventRepo) ListByVenueID(ctx context.Context, venueID string) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Event{}
	for _, ev := range f.items {
		if ev.VenueID == venueID {
			cp := *ev
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Event{}
	for _, ev := range f.items {
		if ev.OwnerID == ownerID {
			cp := *ev
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeVenueRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Venue

	deleteErr error
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{items: make(map[string]*domain.Venue)}
}

func (f *fakeVenueRepo) Create(ctx context.Context, venue *domain.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *venue
	f.items[venue.ID] = &cp
	return nil
}

func (f *fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVenueRepo) List(ctx context.Context) ([]*domain.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Venue{}
	for _, v := range f.items {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeVenueRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Room

	// failDeletes lists room ids whose deletion fails with a storage error.
	failDeletes map[string]bool
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{items: make(map[string]*domain.Room), failDeletes: make(map[string]bool)}
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *room
	f.items[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoomRepo) ListByVenueID(ctx context.Context, venueID string) ([]*domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Room{}
	for _, r := range f.items {
		if r.VenueID == venueID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDeletes[id] {
		return errStorage
	}
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	items map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.items[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
