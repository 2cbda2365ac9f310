package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"roomscheduler/internal/delivery/http/controllers"
	"roomscheduler/internal/delivery/http/middleware"
	"roomscheduler/internal/domain"
)

// Controllers bundles the controllers the router wires up.
type Controllers struct {
	Auth        *controllers.AuthController
	Venue       *controllers.VenueController
	Room        *controllers.RoomController
	Event       *controllers.EventController
	Invitation  *controllers.InvitationController
	Participant *controllers.ParticipantController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Venues
	mux.HandleFunc("POST /venues", auth(c.Venue.CreateVenue))
	mux.HandleFunc("GET /venues", auth(c.Venue.ListVenues))
	mux.HandleFunc("GET /venues/{venueID}", auth(c.Venue.GetVenue))
	mux.HandleFunc("GET /venues/{venueID}/deletion-info", auth(c.Venue.GetDeletionInfo))
	mux.HandleFunc("DELETE /venues/{venueID}", auth(c.Venue.DeleteVenue))

	// Rooms
	mux.HandleFunc("POST /venues/{venueID}/rooms", auth(c.Room.CreateRoom))
	mux.HandleFunc("GET /venues/{venueID}/rooms", auth(c.Room.ListVenueRooms))
	mux.HandleFunc("GET /rooms/{roomID}", auth(c.Room.GetRoom))
	mux.HandleFunc("DELETE /rooms/{roomID}", auth(c.Room.DeleteRoom))

	// Events
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events/mine", auth(c.Event.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))

	// Invitations
	mux.HandleFunc("POST /events/{eventID}/invitations", auth(c.Invitation.CreateInvitation))
	mux.HandleFunc("GET /events/{eventID}/invitations", auth(c.Invitation.ListInvitations))
	mux.HandleFunc("POST /invitations/redeem", auth(c.Invitation.RedeemInvitation))
	mux.HandleFunc("DELETE /invitations/{code}", auth(c.Invitation.DeleteInvitation))

	// Participants
	mux.HandleFunc("GET /events/{eventID}/participants", auth(c.Participant.ListEventParticipants))
	mux.HandleFunc("DELETE /events/{eventID}/participants/{userID}", auth(c.Participant.RemoveParticipant))
	mux.HandleFunc("GET /me/participations", auth(c.Participant.ListMyParticipations))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
