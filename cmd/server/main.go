// G1 Creative - agency site server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lewieville/g1-creative-sub000/internal/api"
	"github.com/lewieville/g1-creative-sub000/internal/behavior"
	"github.com/lewieville/g1-creative-sub000/internal/chat"
	"github.com/lewieville/g1-creative-sub000/internal/config"
	"github.com/lewieville/g1-creative-sub000/internal/llm"
	"github.com/lewieville/g1-creative-sub000/internal/middleware"
	"github.com/lewieville/g1-creative-sub000/internal/relay"
	"github.com/lewieville/g1-creative-sub000/internal/store"
	"github.com/lewieville/g1-creative-sub000/internal/visitor"
	"github.com/lewieville/g1-creative-sub000/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "site", cfg.SiteName, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	engine := behavior.NewEngine(store.NewBehaviorStore(repo))

	// Chat proxy (optional: the endpoint answers 500 without a credential).
	var chatService api.ChatService
	if cfg.ChatEnabled() {
		prompt, err := chat.LoadPrompt(cfg.ChatPromptPath)
		if err != nil {
			slog.Error("Failed to load chat prompt", "error", err)
			os.Exit(1)
		}
		completer := llm.NewOpenAIClient(llm.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		chatService = chat.NewService(completer, prompt)
		slog.Info("Chat assistant enabled", "model", cfg.OpenAIModel)
	} else {
		slog.Info("Chat assistant disabled (OPENAI_API_KEY not set)")
	}

	relayClient := relay.NewClient(cfg.FormRelayURL, cfg.FormAccessKey, cfg.RelayTimeout)

	// Initialize handlers.
	chatHandler := api.NewChatHandler(chatService)
	contactHandler := api.NewContactHandler(relayClient)
	behaviorHandler := api.NewBehaviorHandler(engine)
	healthHandler := api.NewHealthHandler(repo, cfg.HealthCheckTimeout)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(visitor.Middleware(cfg.IsDevelopment()))

	healthHandler.RegisterHealth(r)
	chatHandler.RegisterRoutes(r)
	contactHandler.RegisterRoutes(r)
	behaviorHandler.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler())

	// Serve the embedded brochure site.
	r.Handle("/*", web.Handler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
