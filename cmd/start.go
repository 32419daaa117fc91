package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/loader"
	"catalog-manager/core/logger"
	"catalog-manager/core/middleware/auth"
	"catalog-manager/core/middleware/rayid"
	"catalog-manager/core/storage"
	"catalog-manager/feature/importer"
	"catalog-manager/feature/library"
	syncfeature "catalog-manager/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Application state, seeded from configuration defaults.
		settings := cfg.Library.Settings()
		settings.RemoteURL = cfg.Sync.RemoteURL
		settings.AutoUpdateInterval = cfg.Sync.AutoUpdateIntervalMS
		state := library.NewState(settings)

		// 4. Local persistence (optional). Without it the catalog lives in
		// memory only.
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else if stateStore, err := database.NewStateStore(db); err != nil {
			logg.Warn("Failed to initialize state store", zap.Error(err))
		} else {
			persister := library.NewPersister(stateStore, logg)
			if err := persister.Load(state); err != nil {
				logg.Warn("Failed to load persisted state", zap.Error(err))
			}
			persister.Attach(state)
			logg.Info("Persistence enabled", zap.String("driver", cfg.Database.Driver))
		}

		// 5. Snapshot archiver (optional, requires sync + storage).
		var archiver *syncfeature.Archiver
		if cfg.Sync.Enabled() && cfg.Sync.ArchiveSnapshots {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Warn("Failed to create storage client; snapshots disabled", zap.Error(err))
			} else {
				archiver = syncfeature.NewArchiver(client, cfg.Storage.Bucket, logg)
			}
		}

		// 6. Sync coordinator, fed by state change notifications.
		coordinator := syncfeature.NewCoordinator(cfg.Sync, state, nil, logg, archiver)
		state.Subscribe(coordinator.Watch)

		// 7. Fiber app and middleware
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Register features
		mgr := loader.NewManager()
		mgr.Register(library.NewFeature(state, logg))
		mgr.Register(importer.NewFeature(state, logg))
		mgr.Register(syncfeature.NewFeature(coordinator, logg))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Automatic silent pull loop
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		coordinator.StartAutoPull(ctx)

		// 10. Start server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 11. Graceful shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancel()
		coordinator.Stop()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
