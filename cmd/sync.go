package cmd

import (
	"context"
	"errors"
	"fmt"

	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/logger"
	"catalog-manager/feature/library"
	syncfeature "catalog-manager/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd is the parent command for manual sync operations.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the catalog with the remote endpoint",
}

// syncPushCmd uploads the local catalog to the remote endpoint.
var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the local catalog to the remote endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(func(ctx context.Context, c *syncfeature.Coordinator, _ *library.Persister, _ *library.State) error {
			return c.PushNow(ctx)
		})
	},
}

// syncPullCmd replaces the local catalog with the remote contents.
var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace the local catalog with the remote contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(func(ctx context.Context, c *syncfeature.Coordinator, persister *library.Persister, state *library.State) error {
			err := c.Pull(ctx, syncfeature.PullOptions{Confirmed: yesConfirm})
			if errors.Is(err, syncfeature.ErrConfirmationRequired) {
				if !confirmAction("The remote collection is empty; pulling will wipe the local catalog.") {
					return nil
				}
				err = c.Pull(ctx, syncfeature.PullOptions{Confirmed: true})
			}
			if err != nil {
				return err
			}
			return persister.Save(state)
		})
	},
}

func init() {
	syncPullCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncPullCmd)
	RootCmd.AddCommand(syncCmd)
}

// runSync wires up config, state, and persistence, then hands the coordinator
// to the operation.
func runSync(op func(context.Context, *syncfeature.Coordinator, *library.Persister, *library.State) error) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	if !cfg.Sync.Enabled() {
		return fmt.Errorf("sync is not configured: set sync.remote_url")
	}

	settings := cfg.Library.Settings()
	settings.RemoteURL = cfg.Sync.RemoteURL
	settings.AutoUpdateInterval = cfg.Sync.AutoUpdateIntervalMS
	state := library.NewState(settings)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	stateStore, err := database.NewStateStore(db)
	if err != nil {
		return fmt.Errorf("failed to initialize state store: %w", err)
	}
	persister := library.NewPersister(stateStore, l)
	if err := persister.Load(state); err != nil {
		return fmt.Errorf("failed to load persisted state: %w", err)
	}

	coordinator := syncfeature.NewCoordinator(cfg.Sync, state, nil, l, nil)
	if err := op(context.Background(), coordinator, persister, state); err != nil {
		return err
	}

	l.Info("Sync finished", zap.Int("books", state.BookCount()))
	return nil
}
