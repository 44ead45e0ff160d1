package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"nalevel/internal/auth"
	"nalevel/internal/config"
	accountSvc "nalevel/internal/domain/services/account"
	"nalevel/internal/handler"
	"nalevel/internal/middleware"
	"nalevel/internal/queue"
	"nalevel/internal/repository"
	"nalevel/internal/repository/kv"
	accountService "nalevel/internal/service/account"
	blogService "nalevel/internal/service/blog"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logger, closeLog, err := config.NewLogger(cfg, "server")
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer closeLog()

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the key-value store shared by both services
	store, err := repository.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	// Account primitives
	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to create password hasher: %v", err)
	}
	codec, err := auth.NewSessionCodec(cfg.SessionTokenFormat, cfg.SessionSecret)
	if err != nil {
		log.Fatalf("Failed to create session codec: %v", err)
	}

	var notifier accountSvc.Notifier
	switch cfg.Notifier {
	case "amqp":
		publisher := queue.NewPublisher(cfg.AMQPURL, logger)
		defer publisher.Close()
		notifier = publisher
	default:
		notifier = accountService.NewLogNotifier(logger)
	}

	// Create services
	authService := accountService.NewAuthService(store, hasher, codec, notifier,
		accountService.Config{
			SessionTTL:    cfg.SessionTTL,
			TokenTTL:      cfg.TokenTTL,
			TrackSessions: cfg.SessionTracking,
		},
		logger,
	)
	contentStore, err := blogService.NewContentStore(ctx,
		kv.NewBlogStateRepository(store, cfg.BlogStoreKey),
		blogService.NewContentAnalyzer(),
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to load content store: %v", err)
	}

	logger.Info("services initialized",
		"password_hasher", cfg.PasswordHasher,
		"session_format", cfg.SessionTokenFormat,
		"session_tracking", cfg.SessionTracking,
		"notifier", cfg.Notifier,
	)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/config", handler.ClientConfig(cfg))
	handler.RegisterRoutes(mux,
		handler.NewAuthHandler(authService, logger),
		handler.NewBlogHandler(contentStore, logger),
		middleware.RequireSession(authService, logger),
	)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Session → Routes
	h = middleware.Session()(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	logger.Info("server listening", "addr", server.Addr)

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	case err := <-serverErr:
		logger.Error("server failed", "error", err)
	}
}
