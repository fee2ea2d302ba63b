package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"inkwell/internal/appstate"
	"inkwell/internal/config"
	"inkwell/internal/store/local"
	"inkwell/internal/store/remote"
	syncpkg "inkwell/internal/sync"
	"inkwell/internal/tools"
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

	logger.Info("studio core starting",
		"environment", cfg.Environment,
		"local_store", cfg.LocalStorePath,
		"remote_base_url", cfg.RemoteBaseURL,
	)

	localStore, err := local.Open(cfg.LocalStorePath, logger)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer localStore.Close()

	remoteClient := remote.NewClient(cfg.RemoteBaseURL, cfg.RemoteTimeout)

	// Sync adapters, one per entity type
	projectSync := syncpkg.NewProjectSync(remoteClient, localStore, logger)
	documentSync := syncpkg.NewDocumentSync(remoteClient, localStore, logger)
	folderSync := syncpkg.NewFolderSync(remoteClient, localStore, logger)
	personaSync := syncpkg.NewPersonaSync(remoteClient, localStore, logger)
	brandVoiceSync := syncpkg.NewBrandVoiceSync(remoteClient, localStore, logger)

	// Application state + tool surface
	state := appstate.NewStore(localStore, documentSync, logger)

	registry, err := tools.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load tool registry: %v", err)
	}
	toolController := tools.NewController(registry, state, logger)

	// Startup sequence: hydrate first, then (and only then) ensure the
	// default project. Running the default check earlier recreates the
	// startup race where "nothing is active" is observed before the
	// persisted pointer has loaded.
	ctx := context.Background()
	state.Hydrate(ctx)

	project, err := state.EnsureDefaultProject(ctx, projectSync)
	if err != nil {
		log.Fatalf("Failed to ensure default project: %v", err)
	}

	// Warm the local mirrors for the active project. Failures are fine:
	// each read already fell back to local data.
	if _, err := documentSync.List(ctx, project.ID); err != nil {
		logger.Warn("document warmup failed", "error", err)
	}
	if _, err := folderSync.List(ctx, project.ID); err != nil {
		logger.Warn("folder warmup failed", "error", err)
	}
	if _, err := personaSync.List(ctx, project.ID); err != nil {
		logger.Warn("persona warmup failed", "error", err)
	}
	if _, err := brandVoiceSync.Get(ctx, project.ID); err != nil {
		logger.Debug("no brand voice for active project", "error", err)
	}

	view := toolController.View()
	logger.Info("workspace ready",
		"active_project_id", project.ID,
		"project_name", project.Name,
		"tools", len(registry.List()),
		"tool_selected", view.Selected != nil,
	)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("studio core stopping")
}
