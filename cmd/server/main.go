package main

import (
	"alcyxob/fitcoach/internal/api"
	"alcyxob/fitcoach/internal/config"
	"alcyxob/fitcoach/internal/notify"
	"alcyxob/fitcoach/internal/repository/mongo"
	"alcyxob/fitcoach/internal/scheduler"
	"alcyxob/fitcoach/internal/service"
	"alcyxob/fitcoach/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title Fitcoach API
// @version 1.0
// @description Routines, trainings and exercise catalog for trainers and their students.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Fitcoach Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatalf("FATAL: jwt.secret (JWT_SECRET) is required")
	}
	log.Println("Configuration loaded.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		idxCtx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureIndexes(idxCtx, appDB)
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	var mediaStorage storage.MediaStorage
	if cfg.S3.BucketName != "" {
		mediaStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("WARN: s3.bucket_name not set, exercise media is disabled")
	}

	// --- Notifications ---
	hub := notify.NewHub()
	var publisher service.Publisher = notify.NewLocalPublisher(hub)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("FATAL: Could not connect to Redis at %s: %v", cfg.Redis.Addr, err)
		}
		redisPublisher := notify.NewRedisPublisher(rdb, cfg.Redis.Channel, hub)
		go func() {
			if err := redisPublisher.Run(ctx); err != nil {
				log.Printf("ERROR: Redis notification subscriber stopped: %v", err)
			}
		}()
		publisher = redisPublisher
		log.Printf("Notifications fan out through Redis channel %s", cfg.Redis.Channel)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	trainingRepo := mongo.NewMongoTrainingRepository(appDB)
	linkRepo := mongo.NewMongoRoutineTrainingRepository(appDB)
	exerciseTrainingRepo := mongo.NewMongoExerciseTrainingRepository(appDB)

	// --- Initialize Services ---
	services := api.Services{
		Auth:     service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Trainer:  service.NewTrainerService(userRepo),
		Exercise: service.NewExerciseService(exerciseRepo, mediaStorage),
		Training: service.NewTrainingService(trainingRepo, exerciseRepo, exerciseTrainingRepo, linkRepo),
		Routine:  service.NewRoutineService(userRepo, routineRepo, trainingRepo, linkRepo, exerciseTrainingRepo, publisher),
	}

	// --- Scheduler ---
	if cfg.Scheduler.Enabled {
		reminders := service.NewReminderService(routineRepo, publisher)
		sched, err := scheduler.New(reminders, cfg.Scheduler.Spec, cfg.Scheduler.ReminderWindow)
		if err != nil {
			log.Fatalf("FATAL: Could not set up scheduler: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// --- Initialize Gin Engine ---
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, cfg.JWT.Secret, services, hub)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	// Hijacked WebSocket connections are not tracked by Shutdown.
	hub.Close()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
