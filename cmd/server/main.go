package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"careteam/internal/api"
	"careteam/internal/auth"
	"careteam/internal/logger"
	"careteam/internal/repository"
	"careteam/internal/service"
)

func main() {
	godotenv.Load()
	logger.Init()
	defer logger.L().Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.S().Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		logger.S().Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		logger.S().Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	caseRepo := repository.NewCaseRepository(database)
	scheduleRepo := repository.NewScheduleRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	eventRepo := repository.NewEventRepository(database)
	discussionRepo := repository.NewDiscussionRepository(database)
	jobRepo := repository.NewJobRepository(database)

	sender := service.NewSenderService()
	authSvc := service.NewAuthService(userRepo)
	availabilitySvc := service.NewAvailabilityService(scheduleRepo, caseRepo)
	sessionSvc := service.NewSessionService(sessionRepo, userRepo, sender)
	eventSvc := service.NewEventService(eventRepo)
	discussionSvc := service.NewDiscussionService(discussionRepo, caseRepo)
	jobSvc := service.NewJobService(jobRepo, sessionRepo, sender)

	authHandler := api.NewAuthHandler(authSvc)
	schedulingHandler := api.NewSchedulingHandler(availabilitySvc, sessionSvc)
	caseHandler := api.NewCaseHandler(caseRepo, discussionSvc)
	eventHandler := api.NewEventHandler(eventSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Authenticated endpoints
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.Middleware(userRepo))
	protected.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	protected.HandleFunc("/cases", caseHandler.ListCases).Methods("GET")
	protected.HandleFunc("/cases/{id}", caseHandler.GetCase).Methods("GET")
	protected.HandleFunc("/cases/{id}/team/availability", schedulingHandler.GetTeamAvailability).Methods("GET")
	protected.HandleFunc("/cases/{id}/sessions", schedulingHandler.ScheduleSession).Methods("POST")
	protected.HandleFunc("/cases/{id}/sessions", schedulingHandler.ListSessions).Methods("GET")
	protected.HandleFunc("/cases/{id}/discussions", caseHandler.ListDiscussions).Methods("GET")
	protected.HandleFunc("/cases/{id}/discussions", caseHandler.CreateDiscussion).Methods("POST")

	protected.HandleFunc("/events", eventHandler.ListEvents).Methods("GET")
	protected.HandleFunc("/events", eventHandler.CreateEvent).Methods("POST")
	protected.HandleFunc("/events/{id}", eventHandler.GetEvent).Methods("GET")
	protected.HandleFunc("/events/{id}", eventHandler.UpdateEvent).Methods("PUT")
	protected.HandleFunc("/events/{id}", eventHandler.DeleteEvent).Methods("DELETE")

	c := cron.New()
	c.AddFunc("@every 5m", func() {
		if err := jobSvc.CompleteElapsedSessions(); err != nil {
			logger.S().Errorf("Cron job error: %v", err)
		}
	})
	c.AddFunc("@every 10m", func() {
		if err := jobSvc.SendUpcomingReminders(); err != nil {
			logger.S().Errorf("Cron job error: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	corsMiddleware := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("CORS_ORIGIN")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.S().Infof("Server running on port %s", port)
	logger.S().Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsMiddleware(r))))
}
