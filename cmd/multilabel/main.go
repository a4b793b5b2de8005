// Package main is the entry point for the multi-label image annotator.
package main

import (
	"context"
	"os"

	"multilabel-go/application"
	"multilabel-go/core/eventbus"
	"multilabel-go/domain/annotation"
	"multilabel-go/domain/schema"
	"multilabel-go/infrastructure/config"
	"multilabel-go/infrastructure/logging"
	"multilabel-go/infrastructure/repository"
	"multilabel-go/presentation"

	"fyne.io/fyne/v2/app"
)

func main() {
	// Load configuration (a missing file means defaults)
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		os.Stderr.WriteString("Ignoring configuration: " + err.Error() + "\n")
		cfg = config.Default()
	}

	// Initialize logging (dev: console only, prod: rotating file)
	logCfg := logging.DefaultConfig()
	logCfg.Level, _ = logging.ParseLevel(cfg.Log.Level)
	logCfg.Dir = cfg.Log.Dir
	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		// Fallback to stderr if logging setup fails
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("Starting multi-label annotator")

	ctx := context.Background()

	// Load the attribute schema
	schemas := schema.NewStore(logger)
	schemas.LoadDefault(cfg.Schema.Path)

	// Optional MongoDB mirror of saved annotations
	var mirror annotation.Repository
	if cfg.MongoDB.Enabled {
		mongoDB, err := repository.NewMongoDB(ctx, &repository.MongoDBConfig{
			URI:            cfg.MongoDB.URI,
			Database:       cfg.MongoDB.Database,
			ConnectTimeout: cfg.MongoDB.ConnectTimeout,
			PingTimeout:    cfg.MongoDB.PingTimeout,
		}, logger)
		if err != nil {
			logger.Warn("MongoDB mirror disabled", "error", err)
		} else {
			defer mongoDB.Close(ctx)
			if err := mongoDB.EnsureAnnotationIndex(ctx, cfg.MongoDB.Collection, cfg.MongoDB.PingTimeout); err != nil {
				logger.Warn("Annotation mirror index not created", "error", err)
			}
			mirror = repository.NewMongoAnnotationRepository(mongoDB, &repository.MongoAnnotationConfig{
				Collection: cfg.MongoDB.Collection,
				Dataset:    cfg.MongoDB.Dataset,
			}, logger)
		}
	}

	annotations := annotation.NewStore(&annotation.StoreConfig{
		Factory: repository.JSONFileFactory(logger),
		Mirror:  mirror,
		Logger:  logger,
	})

	// Initialize event bus
	eventBus := eventbus.New(logger)
	defer eventBus.Close()

	// Initialize coordinator
	coordinator := application.NewCoordinator(&application.CoordinatorConfig{
		EventBus:    eventBus,
		Schemas:     schemas,
		Annotations: annotations,
		Logger:      logger,
	})
	defer coordinator.Stop()

	// Initialize UI event bridge
	bridge := presentation.NewUIEventBridge(&presentation.BridgeConfig{
		Coordinator: coordinator,
		EventBus:    eventBus,
		Logger:      logger,
	})
	defer bridge.Close()

	// Initialize Fyne app
	fyneApp := app.New()

	// Initialize main window
	mainWindow := presentation.NewMainWindow(&presentation.MainWindowConfig{
		App:    fyneApp,
		Bridge: bridge,
		Logger: logger,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	})
	defer mainWindow.Cleanup()

	// Publish the initial schema and selection once the window listens
	coordinator.Start()

	// Show and run
	mainWindow.Show()
	fyneApp.Run()

	logger.Info("Application shutdown complete")
}
