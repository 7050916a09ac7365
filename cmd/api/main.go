package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boothlead_backend/internal/adapters/storage"
	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/crm"
	"boothlead_backend/internal/email"
	"boothlead_backend/internal/events"
	"boothlead_backend/internal/exports"
	apphttp "boothlead_backend/internal/http"
	"boothlead_backend/internal/http/router"
	"boothlead_backend/internal/insights"
	"boothlead_backend/internal/leads"
	"boothlead_backend/internal/notification"
	"boothlead_backend/internal/scheduler"
	"boothlead_backend/internal/traffic"
	"boothlead_backend/migrations"
	"boothlead_backend/platform/config"
	"boothlead_backend/platform/db"
	"boothlead_backend/platform/logger"
	"boothlead_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Scheduler client for background CRM sync; nil when redis is absent
	schedulerClient, closeScheduler := initScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Object storage for export archives; nil disables the archive endpoint
	var store *storage.MinIOService
	if cfg.IsMinIOEnabled() {
		store, err = storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure exports bucket", 5, 2*time.Second, func() error {
			return store.EnsureBucketExists(ctx, cfg.GetMinioBucketExports())
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketExports())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		log.Info("storage service initialized", "exportsBucket", cfg.GetMinioBucketExports())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; export archiving disabled")
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule := leads.NewModule(pool, eventBus, val, log)
	catalogModule := catalog.NewModule()
	trafficModule := traffic.NewModule(pool, leadsModule.Repository(), eventBus, val, log)

	var enqueuer crm.Enqueuer
	if schedulerClient != nil {
		enqueuer = schedulerClient
	}
	crmModule := crm.NewModule(leadsModule.Repository(), eventBus, cfg, log, enqueuer)

	generator := insights.NewGenerator(ctx, cfg, log)
	insightsModule := insights.NewModule(generator, leadsModule.Repository(), log)

	exportsModule := exports.NewModule(leadsModule.Repository(), store, cfg.GetMinioBucketExports(), eventBus, log)

	// Notification module only consumes events; constructing it subscribes
	// the hot lead alert handler.
	var sender email.Sender
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(
			cfg.GetSMTPHost(), cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(), cfg.GetEmailFromName(),
		)
	} else {
		log.Warn("SMTP not configured; hot lead alerts disabled")
	}
	notification.NewModule(leadsModule.Repository(), sender, cfg, eventBus, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			catalogModule,
			leadsModule,
			trafficModule,
			crmModule,
			insightsModule,
			exportsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; background CRM sync disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
