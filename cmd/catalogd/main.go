package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bigdecks/catalog/internal/bulk"
	"github.com/bigdecks/catalog/internal/cards"
	"github.com/bigdecks/catalog/internal/config"
	"github.com/bigdecks/catalog/internal/database"
	"github.com/bigdecks/catalog/internal/logging"
	"github.com/bigdecks/catalog/internal/server"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "catalogd",
		Short:         "Card catalog ingestion and query service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupFlags(rootCmd)
	rootCmd.AddCommand(newServeCommand(), newPopulateCommand(), newRebuildCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().String("http-address", defaults.GetString("http.address"), "HTTP listen address")
	cmd.PersistentFlags().String("data-dir", defaults.GetString("data.dir"), "Directory for downloaded bulk data")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite database path")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("manifest-url", defaults.GetString("bulk.manifest_url"), "Upstream bulk manifest URL")
	cmd.PersistentFlags().Int("batch-size", defaults.GetInt("ingest.batch_size"), "Records per ingestion transaction")

	bindFlag(cmd, "http.address", "http-address")
	bindFlag(cmd, "data.dir", "data-dir")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "bulk.manifest_url", "manifest-url")
	bindFlag(cmd, "ingest.batch_size", "batch-size")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func newPopulateCommand() *cobra.Command {
	var rebuildStore bool
	var force bool

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Download the latest card data and load it into the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPopulate(cmd.Context(), rebuildStore, force)
		},
	}
	cmd.Flags().BoolVar(&rebuildStore, "rebuild", false, "Drop and recreate the catalog store before ingesting")
	cmd.Flags().BoolVar(&force, "force", false, "Ingest even if the local payload appears fresh")
	return cmd
}

func newRebuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Delete the catalog store, recreate the schema, and repopulate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPopulate(cmd.Context(), true, true)
		},
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-side catalog API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runPopulate(ctx context.Context, rebuildStore, force bool) error {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if err := os.MkdirAll(appConfig.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	var db *gorm.DB
	if rebuildStore {
		db, err = database.Rebuild(appConfig.DatabasePath, logger)
	} else {
		db, err = database.Open(appConfig.DatabasePath, logger)
	}
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer database.Close(db) //nolint:errcheck

	manifest, err := refreshBulkData(ctx, appConfig, logger, force)
	if err != nil {
		return err
	}
	logger.Info("using bulk payload",
		zap.Time("updated_at", manifest.UpdatedAt),
		zap.String("path", appConfig.PayloadPath()))

	loader, err := cards.NewLoader(cards.LoaderConfig{
		Database:  db,
		Logger:    logger,
		BatchSize: appConfig.BatchSize,
	})
	if err != nil {
		return err
	}

	stats, err := loader.Run(ctx, appConfig.PayloadPath())
	if err != nil {
		return fmt.Errorf("catalog population failed: %w", err)
	}

	fmt.Printf("Database populated successfully: processed %d, inserted %d, skipped %d in %s\n",
		stats.Processed, stats.Inserted, stats.Skipped, stats.Elapsed.Round(time.Millisecond))
	return nil
}

// refreshBulkData makes sure a usable manifest and payload exist locally,
// downloading them when the manifest is stale, the payload is missing, or the
// caller forces it.
func refreshBulkData(ctx context.Context, appConfig config.AppConfig, logger *zap.Logger, force bool) (*bulk.Manifest, error) {
	client, err := bulk.NewClient(bulk.ClientConfig{
		ManifestURL: appConfig.ManifestURL,
		UserAgent:   appConfig.UserAgent,
		Timeout:     appConfig.RequestTimeout,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	manifestPath := appConfig.ManifestPath()
	payloadPath := appConfig.PayloadPath()

	_, payloadErr := os.Stat(payloadPath)
	payloadMissing := payloadErr != nil

	if !force && !payloadMissing && bulk.IsFresh(manifestPath, time.Now()) {
		return bulk.LoadManifest(manifestPath)
	}

	manifest, err := bulk.LoadManifest(manifestPath)
	if err != nil || manifest.Stale(time.Now()) || force {
		manifest, err = client.FetchManifest(ctx, manifestPath)
		if err != nil {
			return nil, err
		}
	}

	if err := client.FetchPayload(ctx, manifest, payloadPath); err != nil {
		return nil, err
	}
	return manifest, nil
}

func runServer(ctx context.Context) error {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.Open(appConfig.DatabasePath, logger)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	cardService, err := cards.NewService(cards.ServiceConfig{
		Database: db,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	handler, err := server.NewHTTPHandler(server.Dependencies{
		CardService: cardService,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    appConfig.HTTPAddress,
		Handler: handler,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("address", appConfig.HTTPAddress))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-signalCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
