// Command lead-rescore recomputes the cached score columns for every
// stored lead. Run it after deploying a scoring change; unchanged leads
// are left untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boothlead_backend/internal/events"
	leadrepo "boothlead_backend/internal/leads/repository"
	leadservice "boothlead_backend/internal/leads/service"
	"boothlead_backend/platform/config"
	"boothlead_backend/platform/db"
	"boothlead_backend/platform/logger"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "abort if the rescore takes longer than this")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := leadservice.New(leadrepo.New(pool), events.NewInMemoryBus(log), log)

	start := time.Now()
	changed, err := svc.RescoreAll(ctx)
	if err != nil {
		log.Error("rescore failed", "error", err)
		os.Exit(1)
	}

	log.Info("rescore complete", "changed", changed, "elapsed", time.Since(start).String())
}
