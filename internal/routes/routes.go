package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonvoice/booking-api/internal/audio"
	"github.com/salonvoice/booking-api/internal/audit"
	"github.com/salonvoice/booking-api/internal/config"
	"github.com/salonvoice/booking-api/internal/conversation"
	"github.com/salonvoice/booking-api/internal/handlers"
	infraRepo "github.com/salonvoice/booking-api/internal/infra/repository"
	"github.com/salonvoice/booking-api/internal/middleware"
	"github.com/salonvoice/booking-api/internal/nlu"
	"github.com/salonvoice/booking-api/internal/speech"
	ucAppointment "github.com/salonvoice/booking-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	sched := ucAppointment.SchedulingFromConfig(cfg)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, sched)

	createUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		sched,
	)

	getUC := ucAppointment.NewGetAppointment(appointmentRepo)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	confirmUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listUC := ucAppointment.NewListAppointments(appointmentRepo)

	// ======================================================
	// VOICE / CONVERSATION COLLABORATORS
	// ======================================================
	detector := nlu.NewRasaDetector(cfg.RasaURL)

	var sessions conversation.SessionStore
	if cfg.RedisAddr != "" {
		sessions = conversation.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword)
	} else {
		log.Println("conversation: no redis configured, sessions held in memory")
		sessions = conversation.NewMemorySessionStore()
	}

	flow := conversation.NewFlow(
		detector,
		sessions,
		appointmentRepo,
		createUC,
		cfg.IntentMinConfidence,
	)

	recognizer, synthesizer := speech.Select(cfg.SpeechProviderURL, cfg.SpeechAPIKey)

	audioStore := audio.Select(
		cfg.AudioBucket,
		cfg.AudioRegion,
		cfg.AWSAccessKeyID,
		cfg.AWSSecretAccessKey,
		cfg.AudioPublicURL,
		cfg.AudioLocalDir,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		availabilityUC,
		createUC,
		getUC,
		cancelUC,
		confirmUC,
		completeUC,
		listUC,
	)

	conversationHandler := handlers.NewConversationHandler(flow)
	voiceHandler := handlers.NewVoiceHandler(recognizer, synthesizer, audioStore, flow)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/branches", catalogHandler.ListBranches)
		api.GET("/services", catalogHandler.ListServices)
		api.GET("/staff", catalogHandler.ListStaff)
		api.GET("/availability", appointmentHandler.Availability)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.POST("/appointments/:id/complete", appointmentHandler.Complete)

			secured.POST("/conversation/detect-intent", conversationHandler.DetectIntent)
			secured.POST("/voice/process-command", voiceHandler.ProcessCommand)
			secured.POST("/voice/text-to-speech", voiceHandler.TextToSpeech)
		}
	}

	// synthesized replies stored on local disk are served from here
	if cfg.AudioBucket == "" {
		r.Static("/media", cfg.AudioLocalDir)
	}
}
