package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"gopkg.in/natefinch/lumberjack.v2"

	"reelhouse/api"
	"reelhouse/config"
	"reelhouse/handlers"
	"reelhouse/internal/database"
	"reelhouse/services/analytics"
	"reelhouse/services/broadcast"
	"reelhouse/services/livedata"
	"reelhouse/services/rokuconfig"
	"reelhouse/services/submissions"
	"reelhouse/utils"
)

func main() {
	fmt.Println("🎬 Reelhouse Backend Starting...")

	// Determine config path (env or default)
	configPath := os.Getenv("REELHOUSE_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("data", "settings.json")
	}

	// Init config manager and load settings (creates defaults if missing)
	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			multiWriter := io.MultiWriter(os.Stdout, fileWriter)
			log.SetOutput(multiWriter)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	// Generate the shared editor secret on first boot. Only the hash is
	// persisted; the plaintext is shown once.
	if settings.Admin.SecretHash == "" {
		secret, hash, err := utils.GenerateAdminSecret()
		if err != nil {
			log.Fatalf("failed to generate admin secret: %v", err)
		}
		settings.Admin.SecretHash = hash
		if err := cfgManager.Save(settings); err != nil {
			log.Fatalf("failed to persist admin secret: %v", err)
		}
		fmt.Printf("🔑 Editor secret (shown once, store it now): %s\n", secret)
	}

	// Live data object store per configured backend.
	var store livedata.ObjectStore
	switch settings.Storage.Backend {
	case config.StorageBackendHTTP:
		timeout := time.Duration(settings.Storage.TimeoutSeconds) * time.Second
		store = livedata.NewHTTPStore(nil, settings.Storage.BucketURL, timeout)
		log.Printf("[main] live data backend: http bucket %s", settings.Storage.BucketURL)
	default:
		store = livedata.NewFileStore(nil, settings.Storage.Path)
		log.Printf("[main] live data backend: file %s", settings.Storage.Path)
	}

	ttl := time.Duration(settings.Cache.LiveDataTTLSeconds) * time.Second
	liveService := livedata.NewService(store, ttl, nil)

	configStore, err := rokuconfig.NewStore(filepath.Dir(configPath))
	if err != nil {
		log.Fatalf("failed to init roku config store: %v", err)
	}

	db, err := database.Open(settings.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	analyticsService := analytics.NewService(db, nil)
	submissionsService := submissions.NewService(db, nil)
	hub := broadcast.NewHub()

	r := mux.NewRouter()
	api.Register(
		r,
		handlers.NewFeedHandler(liveService, configStore, analyticsService, ttl),
		handlers.NewPublishHandler(liveService, hub),
		handlers.NewRokuConfigHandler(configStore, hub),
		handlers.NewAnalyticsHandler(analyticsService),
		handlers.NewSubmissionsHandler(submissionsService),
		handlers.NewEventsHandler(hub),
		handlers.NewStatusHandler(),
		settings.Admin.SecretHash,
	)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[main] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}
