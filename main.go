// File: mentorship/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentorship/config"
	"mentorship/cron"
	"mentorship/database"
	"mentorship/database/repository"
	"mentorship/handlers"
	"mentorship/middleware"
	"mentorship/routes"
	"mentorship/services/booking"
	"mentorship/services/calendar"
	"mentorship/services/events"
	"mentorship/services/notification"
	"mentorship/services/scheduling"
	"mentorship/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	var mongoClient *mongo.Client
	if config.UsesMongo() {
		database.InitDB()
		mongoClient = database.MongoClient
	}
	cacheClient := utils.GetCacheClient()
	deviceClient := utils.GetDeviceCacheClient()

	// Push notifications degrade to logging when Firebase is not configured.
	var sender notification.Sender = notification.LogSender{Logger: logger}
	if err := utils.FirebaseInit(rootCtx); err != nil {
		logger.Warn("Firebase unavailable; push notifications will only be logged", zap.Error(err))
	} else {
		sender = utils.FCMClient
	}

	// repositories.
	mentorRepo := newMentorRepo(logger)
	sessionRepo := newSessionRepo(logger)

	// Google Calendar busy time counts as booked when a mentor linked a calendar.
	var syncer calendar.Syncer
	if path := config.AppConfig.GoogleCalendarCredentialsFile; path != "" {
		g, err := calendar.NewGoogleSyncer(rootCtx, path)
		if err != nil {
			logger.Warn("Google Calendar disabled", zap.Error(err))
		} else {
			syncer = g
		}
	}
	var booked scheduling.BookedSlotSource = sessionRepo
	if syncer != nil {
		booked = &calendar.MergedSlotSource{Sessions: sessionRepo, Mentors: mentorRepo, Syncer: syncer, Logger: logger}
	}

	engine := scheduling.NewEngine(mentorRepo, booked, scheduling.SystemClock{}, scheduling.Options{
		ApplyDateOverrides:      config.AppConfig.SchedulingApplyOverrides,
		ApplyBlockedPeriods:     config.AppConfig.SchedulingApplyBlocked,
		RequireScheduleCoverage: config.AppConfig.SchedulingRequireCover,
	})

	// services.
	devices := notification.NewRedisDeviceTokenStore(deviceClient)
	notificationService, err := notification.NewDefaultNotificationService(mentorRepo, devices, sender)
	if err != nil {
		logger.Fatal("main: failed to build notification service", zap.Error(err))
	}

	var publisher events.Publisher = events.LogPublisher{Logger: logger}
	if url := config.AppConfig.RabbitURL; url != "" {
		p, err := events.NewRabbitPublisher(url, config.AppConfig.EventsExchange)
		if err != nil {
			logger.Warn("RabbitMQ unavailable; session events will only be logged", zap.Error(err))
		} else {
			publisher = p
		}
	}
	defer func() { _ = publisher.Close() }()

	taskClient := asynq.NewClient(cron.RedisOpt())
	defer func() { _ = taskClient.Close() }()

	bookingService := &booking.DefaultBookingService{
		Mentors:  mentorRepo,
		Sessions: sessionRepo,
		Engine:   engine,
		Clock:    scheduling.SystemClock{},
		Cache:    booking.NewRedisAvailabilityCache(cacheClient),
		Notifier: notificationService,
		Devices:  devices,
		Tasks:    taskClient,
		Events:   publisher,
		Logger:   logger,
	}

	worker := &cron.Worker{
		Sessions: sessionRepo,
		Mentors:  mentorRepo,
		Notifier: notificationService,
		Calendar: syncer,
		Logger:   logger,
	}
	workerSrv := worker.Start(cron.RedisOpt())

	utils.StartHealthMonitor(rootCtx, []*redis.Client{cacheClient, deviceClient}, mongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(handlers.NewBookingHandler(bookingService))
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	workerSrv.Shutdown()
	stop()

	if utils.FirestoreClient != nil {
		_ = utils.FirestoreClient.Close()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

func newMentorRepo(logger *zap.Logger) repository.MentorRepository {
	switch config.AppConfig.MentorStore {
	case "firestore":
		if utils.FirestoreClient == nil {
			logger.Fatal("main: MENTOR_STORE=firestore but Firestore is not initialized")
		}
		return repository.NewFirestoreMentorRepo(utils.FirestoreClient)
	case "memory":
		logger.Info("Using in-memory mentor store with demo mentors")
		return repository.NewMemoryMentorRepo(repository.DemoMentors()...)
	default:
		repo, err := repository.NewMongoMentorRepo()
		if err != nil {
			logger.Fatal("main: failed to initialize mentor repository", zap.Error(err))
		}
		return repo
	}
}

func newSessionRepo(logger *zap.Logger) repository.SessionRepository {
	if config.AppConfig.SessionStore == "memory" {
		logger.Info("Using in-memory session store")
		return repository.NewMemorySessionRepo()
	}
	repo, err := repository.NewMongoSessionRepo()
	if err != nil {
		logger.Fatal("main: failed to initialize session repository", zap.Error(err))
	}
	return repo
}
