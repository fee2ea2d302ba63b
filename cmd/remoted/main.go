package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"inkwell/internal/config"
	"inkwell/internal/middleware"
	"inkwell/internal/remoteserver"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("remote store starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	ctx := context.Background()
	pool, err := remoteserver.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	store, err := remoteserver.NewEntityStore(ctx, pool, logger)
	if err != nil {
		log.Fatalf("Failed to initialize entity store: %v", err)
	}
	logger.Info("database connected")

	projectHandler := remoteserver.NewEntityHandler(remoteserver.KindProject, store, logger)
	documentHandler := remoteserver.NewEntityHandler(remoteserver.KindDocument, store, logger)
	folderHandler := remoteserver.NewEntityHandler(remoteserver.KindFolder, store, logger)
	personaHandler := remoteserver.NewEntityHandler(remoteserver.KindPersona, store, logger)
	brandVoiceHandler := remoteserver.NewBrandVoiceHandler(store, logger)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.List)
	mux.HandleFunc("POST /api/projects", projectHandler.Create)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.Get)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.Update)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.Delete)

	// Brand voice (per-project singleton)
	mux.HandleFunc("GET /api/projects/{id}/brand-voice", brandVoiceHandler.Get)
	mux.HandleFunc("PUT /api/projects/{id}/brand-voice", brandVoiceHandler.Put)
	mux.HandleFunc("DELETE /api/projects/{id}/brand-voice", brandVoiceHandler.Delete)

	// Document routes
	mux.HandleFunc("GET /api/documents", documentHandler.List)
	mux.HandleFunc("POST /api/documents", documentHandler.Create)
	mux.HandleFunc("GET /api/documents/{id}", documentHandler.Get)
	mux.HandleFunc("PATCH /api/documents/{id}", documentHandler.Update)
	mux.HandleFunc("DELETE /api/documents/{id}", documentHandler.Delete)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.List)
	mux.HandleFunc("POST /api/folders", folderHandler.Create)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.Get)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.Update)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.Delete)

	// Persona routes
	mux.HandleFunc("GET /api/personas", personaHandler.List)
	mux.HandleFunc("POST /api/personas", personaHandler.Create)
	mux.HandleFunc("GET /api/personas/{id}", personaHandler.Get)
	mux.HandleFunc("PATCH /api/personas/{id}", personaHandler.Update)
	mux.HandleFunc("DELETE /api/personas/{id}", personaHandler.Delete)

	var handler http.Handler = mux
	handler = middleware.Recovery(logger)(handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	handler = corsHandler.Handler(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("remote store listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
