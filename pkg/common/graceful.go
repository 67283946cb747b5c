package common

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

// ShutdownHook runs after a termination signal, before the server stops
// accepting requests. Errors are logged and do not abort the shutdown.
type ShutdownHook func(ctx context.Context) error

// RunServerWithShutdown serves until SIGINT or SIGTERM and then shuts the
// server down within cfg.Shutdown. Each hook gets at most cfg.Hook.
func RunServerWithShutdown(server *http.Server, name string, cfg TimeoutConfig, hooks ...ShutdownHook) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting %s on %s", name, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("%s listen error: %v", name, err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutdown signal received for %s", name)
	if err := Shutdown(server, cfg, hooks...); err != nil {
		log.Printf("graceful shutdown of %s failed: %v", name, err)
		return
	}
	log.Printf("%s shutdown complete", name)
}

// Shutdown runs hooks in order and then stops the server.
func Shutdown(server *http.Server, cfg TimeoutConfig, hooks ...ShutdownHook) error {
	hookTimeout := cfg.Hook
	if hookTimeout <= 0 {
		hookTimeout = 5 * time.Second
	}
	shutdownTimeout := cfg.Shutdown
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for i, h := range hooks {
		if h == nil {
			continue
		}
		hCtx, hCancel := context.WithTimeout(ctx, hookTimeout)
		if err := h(hCtx); err != nil {
			log.Printf("shutdown hook %d failed: %v", i, err)
		}
		if errors.Is(hCtx.Err(), context.DeadlineExceeded) {
			log.Printf("shutdown hook %d timed out", i)
		}
		hCancel()
	}
	return server.Shutdown(ctx)
}

type TimeoutConfig struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
	Shutdown   time.Duration
	Hook       time.Duration
}

var DefaultTimeouts = TimeoutConfig{
	ReadHeader: 5 * time.Second,
	Read:       15 * time.Second,
	Write:      30 * time.Second,
	Idle:       60 * time.Second,
	Shutdown:   15 * time.Second,
	Hook:       5 * time.Second,
}

// LoadTimeoutConfig overrides defaults with positive whole seconds from
// READ_HEADER_TIMEOUT, READ_TIMEOUT, WRITE_TIMEOUT, IDLE_TIMEOUT,
// SHUTDOWN_TIMEOUT and HOOK_TIMEOUT.
func LoadTimeoutConfig(defaults TimeoutConfig) TimeoutConfig {
	for env, value := range map[string]*time.Duration{
		"READ_HEADER_TIMEOUT": &defaults.ReadHeader,
		"READ_TIMEOUT":        &defaults.Read,
		"WRITE_TIMEOUT":       &defaults.Write,
		"IDLE_TIMEOUT":        &defaults.Idle,
		"SHUTDOWN_TIMEOUT":    &defaults.Shutdown,
		"HOOK_TIMEOUT":        &defaults.Hook,
	} {
		if v, ok := os.LookupEnv(env); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*value = time.Duration(n) * time.Second
			}
		}
	}
	return defaults
}

func NewServerWithTimeouts(addr string, handler http.Handler, cfg TimeoutConfig) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeader,
		ReadTimeout:       cfg.Read,
		WriteTimeout:      cfg.Write,
		IdleTimeout:       cfg.Idle,
	}
}
