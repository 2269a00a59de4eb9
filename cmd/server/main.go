package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "lendly/internal/api/http"
	"lendly/internal/cache"
	"lendly/internal/config"
	"lendly/internal/events"
	"lendly/internal/logger"
	"lendly/internal/repository/postgres"
	"lendly/internal/security"
	"lendly/internal/service"
)

const tokenDuration = 24 * time.Hour

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Lendly backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Cache
	var itemCache cache.Cache
	if cfg.Redis.Addr != "" {
		itemCache, err = cache.NewRedis(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			log.Fatalf("Failed to connect to redis: %v", err)
		}
	} else {
		logger.Info("No redis address configured, caching disabled")
		itemCache = cache.NewNoop()
	}
	cacheTTL := time.Duration(cfg.Redis.TTLSeconds) * time.Second

	// Initialize Event Publisher
	var publisher events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err = events.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			logger.Error("Failed to connect to kafka", "error", err)
			log.Fatalf("Failed to connect to kafka: %v", err)
		}
		defer publisher.Close()
	} else {
		logger.Info("No kafka brokers configured, event publishing disabled")
		publisher = events.NewNoop()
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, tokenDuration)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	bookingSvc := service.NewBookingService(
		store.RequestRepository,
		store.ItemRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		publisher,
		itemCache,
	)
	itemSvc := service.NewItemService(store.ItemRepository, itemCache, cacheTTL)
	userSvc := service.NewUserService(store.UserRepository, itemCache, cacheTTL)
	chatSvc := service.NewChatService(store.ChatRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Bookings:      bookingSvc,
		Items:         itemSvc,
		Users:         userSvc,
		Chats:         chatSvc,
		Notifications: noteSvc,
		Tokens:        tokenManager,
		HealthCheck:   store.Ping,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
