package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	registry "github.com/krisalay/expiring-registry"
	"github.com/krisalay/expiring-registry/api"
	"github.com/krisalay/expiring-registry/config"
	"github.com/krisalay/expiring-registry/engine"
	"github.com/krisalay/expiring-registry/expiration"
	"github.com/krisalay/expiring-registry/mirror"
	"github.com/krisalay/expiring-registry/notify"
	"github.com/krisalay/expiring-registry/writepolicy"
)

// Replaced in tests.
var (
	openMirror  = mirror.Open
	setupEvents = notify.SetupConn
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
	log.Println("registry stopped")
}

// run owns every resource so that its deferred Close calls happen on all exit paths.
func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Signal-aware root context: SIGINT/SIGTERM stops the server and the reclamation loop.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := &Metrics{}

	// ---------------- Persistence Mirror ----------------
	backend, err := openMirror(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("mirror: %w", err)
	}
	var writePolicy writepolicy.WritePolicy
	if backend != nil {
		defer backend.Close()
		switch cfg.MirrorMode {
		case config.WriteBack:
			writePolicy = writepolicy.NewWriteBackPolicy(backend, cfg.MirrorBuffer, metrics)
		default:
			writePolicy = writepolicy.NewWriteThroughPolicy(backend, metrics)
		}
		log.Printf("mirror enabled: mode=%s", cfg.MirrorMode)
	}

	// ---------------- Lifecycle Events ----------------
	var hook notify.Hook
	if cfg.EventsURL != "" {
		conn, ch, err := setupEvents(cfg.EventsURL)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		defer conn.Close()
		defer ch.Close()

		amqpHook := notify.NewAMQPHook(ch, cfg.EventsBuffer)
		defer amqpHook.Close()
		hook = amqpHook
		log.Printf("events enabled: exchange=%s", notify.ExchangeName)
	}

	// ---------------- Registry ----------------
	eng := engine.NewRegistryEngine(
		expiration.FixedTTL{},
		writePolicy,
		hook,
		metrics,
	)
	reg := registry.New(eng, cfg.SweepInterval)
	defer reg.Close()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: api.NewServer(reg, func() any {
			return metrics.Snapshot(reg.Len())
		}).Routes(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return reg.Run(gctx)
	})

	g.Go(func() error {
		log.Printf("server running on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	metrics.Snapshot(reg.Len()).Print()

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
