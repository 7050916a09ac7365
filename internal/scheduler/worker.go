package scheduler

import (
	"context"
	"fmt"

	"boothlead_backend/platform/config"
	"boothlead_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// CRMSyncer pushes one lead to the connected CRM platform.
type CRMSyncer interface {
	SyncLead(ctx context.Context, leadID uuid.UUID) error
}

// Rescorer recomputes cached scores, returning how many leads changed.
type Rescorer interface {
	RescoreAll(ctx context.Context) (int, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	crm    CRMSyncer
	leads  Rescorer
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, crm CRMSyncer, leads Rescorer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		crm:    crm,
		leads:  leads,
		log:    log,
	}

	mux.HandleFunc(TaskCRMSyncLead, w.handleCRMSyncLead)
	mux.HandleFunc(TaskLeadsRescore, w.handleLeadsRescore)

	return w, nil
}

func (w *Worker) handleCRMSyncLead(ctx context.Context, task *asynq.Task) error {
	if w.crm == nil {
		return nil
	}

	payload, err := ParseCRMSyncLeadPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	return w.crm.SyncLead(ctx, leadID)
}

func (w *Worker) handleLeadsRescore(ctx context.Context, task *asynq.Task) error {
	if w.leads == nil {
		return nil
	}

	payload, err := ParseLeadsRescorePayload(task)
	if err != nil {
		return err
	}

	changed, err := w.leads.RescoreAll(ctx)
	if err != nil {
		return err
	}

	w.log.Info("bulk rescore finished", "changed", changed, "reason", payload.Reason)
	return nil
}

// Run starts the worker and blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
