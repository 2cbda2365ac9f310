package main

import (
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"roomscheduler/config"
	"roomscheduler/internal/adapters/auth"
	"roomscheduler/internal/adapters/email"
	delivery "roomscheduler/internal/delivery/http"
	"roomscheduler/internal/delivery/http/controllers"
	"roomscheduler/internal/delivery/http/middleware"
	"roomscheduler/internal/repository/dynamo"
	"roomscheduler/internal/services"
)

// @title Room Scheduler API
// @version 1.0
// @description Venue, room, and event planning service with invitation-code access control.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	client := dynamo.NewClient(cfg.AWS)
	userRepo := dynamo.NewUserRepository(client, cfg.Tables.Users)
	venueRepo := dynamo.NewVenueRepository(client, cfg.Tables.Venues)
	roomRepo := dynamo.NewRoomRepository(client, cfg.Tables.Rooms)
	eventRepo := dynamo.NewEventRepository(client, cfg.Tables.Events)
	invitationRepo := dynamo.NewInvitationRepository(client, cfg.Tables.Invitations)
	participantRepo := dynamo.NewParticipantRepository(client, cfg.Tables.Participants)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer, tokenVerifier := auth.NewJWTAuth(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
		},
	})
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	tokenExpiry := time.Duration(cfg.JWTExpiryHours) * time.Hour
	userService := services.NewUserService(userRepo, hasher, tokenIssuer, tokenExpiry)
	venueService := services.NewVenueService(venueRepo, roomRepo, eventRepo, logger)
	roomService := services.NewRoomService(roomRepo, venueRepo)
	eventService := services.NewEventService(eventRepo, venueRepo, invitationRepo, participantRepo, logger)
	invitationService := services.NewInvitationService(invitationRepo, participantRepo, eventRepo, userRepo, emailService, logger)
	participantService := services.NewParticipantService(participantRepo, eventRepo)

	mux := delivery.NewRouter(delivery.Controllers{
		Auth:        controllers.NewAuthController(logger, userService),
		Venue:       controllers.NewVenueController(logger, venueService),
		Room:        controllers.NewRoomController(logger, roomService),
		Event:       controllers.NewEventController(logger, eventService),
		Invitation:  controllers.NewInvitationController(logger, invitationService),
		Participant: controllers.NewParticipantController(logger, participantService),
	}, tokenVerifier)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr, "environment", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
