// Apsara - skincare consultation API server
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

	"github.com/apsara-ai/apsara-server/internal/analyzer"
	"github.com/apsara-ai/apsara-server/internal/api"
	"github.com/apsara-ai/apsara-server/internal/catalog"
	"github.com/apsara-ai/apsara-server/internal/config"
	"github.com/apsara-ai/apsara-server/internal/engine"
	"github.com/apsara-ai/apsara-server/internal/middleware"
	"github.com/apsara-ai/apsara-server/internal/session"
	"github.com/apsara-ai/apsara-server/internal/upload"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
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

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	products, err := catalog.NewSQLite(cfg.CatalogDBPath, cfg.ProductsCSVPath)
	if err != nil {
		slog.Error("Failed to initialize product catalog", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := products.Close(); closeErr != nil {
			slog.Error("Failed to close catalog", "error", closeErr)
		}
	}()

	if err := products.Ping(context.Background()); err != nil {
		slog.Error("Catalog health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Product catalog ready")

	uploads, err := upload.NewService(cfg.UploadDir)
	if err != nil {
		slog.Error("Failed to initialize upload service", "error", err)
		os.Exit(1)
	}

	// The remote scorer is optional; without it the local heuristic scorer
	// classifies uploaded photos.
	var scorer analyzer.Analyzer = analyzer.NewHeuristic()
	if cfg.AnalyzerURL != "" {
		slog.Info("Using remote skin scorer", "url", cfg.AnalyzerURL)
		scorer = analyzer.NewRemote(cfg.AnalyzerURL, cfg.AnalyzerTimeout)
	} else {
		slog.Info("ANALYZER_URL not set, using local heuristic scorer")
	}

	sessions := session.NewMemoryStore()
	eng := engine.New(sessions, products, cfg.ProductLimit)
	chatHandler := api.NewHandler(eng, sessions, uploads, scorer)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	origins := []string{"*"}
	if !cfg.IsDevelopment() {
		origins = []string{cfg.FrontendURL}
	}
	r.Use(middleware.CORS(origins))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Apsara API! 🌸"})
	})

	chatHandler.RegisterRoutes(r)

	// Stored images are served back at /uploads/<name>.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Start TTL worker.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session.StartTTLWorker(ctx, sessions, cfg.SessionTTL, cfg.SweepInterval)

	// Create server.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

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
