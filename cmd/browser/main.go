package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/matst80/slask-market/pkg/catalog"
	"github.com/matst80/slask-market/pkg/common"
	"github.com/matst80/slask-market/pkg/messaging"
	"github.com/matst80/slask-market/pkg/server"
	"github.com/matst80/slask-market/pkg/storage"
	"github.com/matst80/slask-market/pkg/tracking"
	amqp "github.com/rabbitmq/amqp091-go"
)

var enableProfiling = flag.Bool("profiling", false, "enable pprof on the debug address")

// buildProvider picks the catalog source: an explicit file, a remote
// endpoint, or the stored catalog under DATA_DIR. A configured redis wraps
// it with a cached fallback.
func buildProvider(ctx context.Context, cfg config) (catalog.Provider, func() error) {
	var provider catalog.Provider
	switch {
	case cfg.CatalogFile != "":
		log.Printf("Reading catalog from %s", cfg.CatalogFile)
		provider = storage.FileProvider(cfg.CatalogFile)
	case cfg.CatalogUrl != "":
		var client *http.Client
		if cfg.CatalogClientId != "" {
			client = catalog.NewOAuthClient(ctx, cfg.CatalogClientId, cfg.CatalogSecret, cfg.CatalogTokenUrl)
		}
		log.Printf("Fetching catalog from %s", cfg.CatalogUrl)
		provider = catalog.NewHttpProvider(cfg.CatalogUrl, client)
	default:
		provider = storage.NewDiskStorage(cfg.Country, cfg.DataDir)
	}
	if cfg.RedisUrl == "" {
		return provider, func() error { return nil }
	}
	cache := catalog.NewRedisCache(cfg.RedisUrl, cfg.RedisPassword, cfg.RedisDb)
	return catalog.NewCachedProvider(provider, cache, "catalog:"+cfg.Country), cache.Close
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	flag.Parse()
	cfg := loadConfig()
	timeouts := common.LoadTimeoutConfig(common.DefaultTimeouts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, closeCache := buildProvider(ctx, cfg)
	c := catalog.New(provider)
	c.OnChange(func(previous, current *catalog.Snapshot) {
		log.Printf("Catalog version %d published with %d products", current.Version(), current.Len())
	})

	retry := catalog.DefaultRetryPolicy
	retry.Timeout = cfg.CatalogLoadTimeout
	go func() {
		if err := c.LoadWithRetry(ctx, retry); err != nil {
			log.Printf("Catalog never loaded: %v", err)
		}
	}()
	if cfg.CatalogRefreshInterval > 0 {
		log.Printf("Refreshing catalog every %v", cfg.CatalogRefreshInterval)
		go c.RefreshEvery(ctx, cfg.CatalogRefreshInterval, cfg.CatalogLoadTimeout)
	}

	var trk tracking.Tracking
	hooks := []common.ShutdownHook{
		func(ctx context.Context) error {
			cancel()
			return closeCache()
		},
	}

	if cfg.RabbitUrl != "" {
		conn, err := amqp.DialConfig(cfg.RabbitUrl, amqp.Config{
			Properties: amqp.NewConnectionProperties(),
		})
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		if err := messaging.ListenForCatalogChanges(conn, cfg.Country, c); err != nil {
			log.Fatalf("Failed to listen for catalog changes: %v", err)
		}
		log.Printf("Listening for catalog changes on %s_%s", cfg.Country, messaging.CatalogChanged)

		rt, err := tracking.NewRabbitTracking(cfg.RabbitUrl, cfg.Country)
		if err != nil {
			log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
		} else {
			trk = rt
			hooks = append(hooks, func(ctx context.Context) error { return rt.Close() })
		}
		hooks = append(hooks, func(ctx context.Context) error { return conn.Close() })
	}

	sessions := server.NewSessionStore(c, cfg.PageSize, cfg.SessionTtl)
	sessions.MaxSessions = cfg.MaxSessions
	go sessions.Run(ctx, time.Minute)

	ws := server.NewWebServer(c, sessions, trk, cfg.PageSize)

	debug := common.NewServerWithTimeouts(cfg.DebugAddress, server.DebugHandler(c, *enableProfiling), common.TimeoutConfig{
		ReadHeader: timeouts.ReadHeader,
		Idle:       timeouts.Idle,
	})
	go func() {
		log.Printf("starting debug server on %s", debug.Addr)
		if err := debug.ListenAndServe(); err != nil {
			log.Printf("debug server stopped: %v", err)
		}
	}()
	hooks = append(hooks, debug.Shutdown)

	srv := common.NewServerWithTimeouts(cfg.ListenAddress, ws.Handler(), timeouts)
	common.RunServerWithShutdown(srv, "catalog browser", timeouts, hooks...)
}
