package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tubegrab/tubegrab/internal/cache"
	"github.com/tubegrab/tubegrab/internal/config"
	"github.com/tubegrab/tubegrab/internal/resolver"
	"github.com/tubegrab/tubegrab/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and web UI",
	Long: `Start the HTTP server that resolves video URLs and redirects downloads.

Examples:
  tubegrab serve          # Start server on the configured port (default 8080)
  tubegrab serve -p 9000  # Start server on port 9000

API Endpoints:
  GET /api/health         # Health check
  GET /api/info           # Resolve a video URL into metadata and formats
  GET /api/download       # Redirect to the external download mirror
  GET /api/download/link  # Same resolution, mirror URL returned as JSON`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP listen port (default: 8080)")
	rootCmd.AddCommand(serveCmd)
}

// cachedResolver puts the TTL cache and single-flight coalescing in front
// of the provider chain.
type cachedResolver struct {
	inner *resolver.Resolver
	cache *cache.Cache
}

func (r *cachedResolver) ResolveID(ctx context.Context, id string) (*resolver.Metadata, error) {
	return r.cache.Do(id, func() (*resolver.Metadata, error) {
		return r.inner.ResolveID(ctx, id)
	})
}

func runServe() error {
	cfg := config.LoadOrDefault()

	if !config.Exists() {
		log.Printf("⚠️  No config file found. Run 'tubegrab init' and set your provider API key.")
	}
	if cfg.Provider.APIKey == "" {
		log.Printf("⚠️  No provider API key configured; every request will use the degraded oEmbed fallback.")
	}

	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	res := &cachedResolver{
		inner: newResolver(cfg),
		cache: cache.New(time.Duration(cfg.Cache.TTLSeconds) * time.Second),
	}
	srv := server.NewServer(cfg, res)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Stop(ctx)
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
