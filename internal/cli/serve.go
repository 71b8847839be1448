package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geofacet/internal/api"
	"github.com/matzehuels/geofacet/pkg/cache"
)

// newServeCmd creates the serve command running the HTTP render service.
func newServeCmd() *cobra.Command {
	var (
		listen    string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.ListenAddr
			}
			if redisAddr == "" {
				redisAddr = cfg.RedisAddr
			}

			store := cache.NewNullCache()
			switch {
			case noCache:
			case redisAddr != "":
				store, err = cache.NewRedisCache(ctx, redisAddr)
				if err != nil {
					return err
				}
				logger.Info("using Redis artifact cache", "addr", redisAddr)
			default:
				store, err = cache.NewFileCache(cfg.CacheDir)
				if err != nil {
					return err
				}
				logger.Info("using file artifact cache", "dir", cfg.CacheDir)
			}
			defer store.Close()

			srv := &http.Server{
				Addr:              listen,
				Handler:           api.NewServer(store, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				logger.Info("render service listening", "addr", listen)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				logger.Info("shutting down")
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, else :8080)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the shared artifact cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}
