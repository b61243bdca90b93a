package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Phlair/civ7-modding-tools-sub000/internal/config"
	"github.com/Phlair/civ7-modding-tools-sub000/internal/server"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/cache"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/refdata"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/storage"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the civmod backend service",
		Long:  "Serve runs the HTTP backend: document load/save, export and build, field and document validation, and reference data. Storage uses MongoDB when mongo_uri is configured, otherwise a JSON file tree.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			store, err := openStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			rd, err := openServerRefdata(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           server.New(store, rd, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Shut down cleanly when the command context is cancelled
			// (SIGINT/SIGTERM from main).
			go func() {
				<-cmd.Context().Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("serving", "addr", cfg.Server.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: addr from config)")
	return cmd
}

func openStorage(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.Server.MongoURI != "" {
		return storage.NewMongoStore(ctx, storage.MongoConfig{URI: cfg.Server.MongoURI})
	}
	return storage.NewFileStore(cfg.DataDir)
}

func openServerRefdata(ctx context.Context, cfg config.Config) (*refdata.Store, error) {
	var source refdata.Source = server.BuiltinCatalogs()
	if cfg.Server.RefdataDir != "" {
		source = refdata.NewDirSource(cfg.Server.RefdataDir)
	}

	var opts []refdata.Option
	if cfg.Server.RedisAddr != "" {
		shared, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Server.RedisAddr})
		if err != nil {
			return nil, err
		}
		opts = append(opts, refdata.WithSharedCache(shared, cfg.CacheTTL))
	}
	return refdata.NewStore(source, opts...), nil
}
