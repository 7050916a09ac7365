package crm

import (
	"context"
	"net/http"

	"boothlead_backend/internal/events"
	apphttp "boothlead_backend/internal/http"
	"boothlead_backend/internal/leads/repository"
	"boothlead_backend/platform/config"
	"boothlead_backend/platform/httpkit"
	"boothlead_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Enqueuer hands sync work to the background scheduler. Nil means no
// scheduler is running and auto-sync falls back to an inline goroutine.
type Enqueuer interface {
	EnqueueCRMSync(ctx context.Context, leadID uuid.UUID) error
}

// Module is the CRM bounded context module implementing http.Module.
type Module struct {
	service *Service
	log     *logger.Logger
}

// NewModule wires the CRM module and, when auto-sync is enabled,
// subscribes to LeadCaptured so every new lead gets pushed out.
func NewModule(leadsRepo *repository.Repository, eventBus events.Bus, cfg config.CRMConfig, log *logger.Logger, enqueuer Enqueuer) *Module {
	connector := NewConnector(cfg, log)
	svc := NewService(connector, leadsRepo, eventBus, log, cfg.GetCRMAPIKey())
	m := &Module{service: svc, log: log}

	if cfg.GetCRMAutoSync() {
		eventBus.Subscribe(events.LeadCaptured{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
			e, ok := event.(events.LeadCaptured)
			if !ok {
				return nil
			}

			if enqueuer != nil {
				if err := enqueuer.EnqueueCRMSync(ctx, e.LeadID); err != nil {
					log.Error("failed to enqueue CRM sync", "error", err, "leadId", e.LeadID)
				}
				return nil
			}

			go func() {
				if err := svc.SyncLead(context.Background(), e.LeadID); err != nil {
					log.Error("auto CRM sync failed", "error", err, "leadId", e.LeadID)
				}
			}()
			return nil
		}))
	}

	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "crm"
}

// Service exposes the sync service for the scheduler worker.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts the CRM routes on /api/v1/crm.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/crm")
	rg.GET("/status", m.status)
	rg.POST("/connect", m.connect)
	rg.POST("/sync", m.syncAll)
	rg.POST("/sync/:id", m.syncOne)
	rg.GET("/mapping", m.mapping)
	rg.GET("/stats", m.stats)
	rg.POST("/enrich/:id", m.enrich)
}

func (m *Module) status(c *gin.Context) {
	res, err := m.service.Status(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

func (m *Module) connect(c *gin.Context) {
	if httpkit.HandleError(c, m.service.Connect(c.Request.Context())) {
		return
	}
	httpkit.OK(c, gin.H{"message": "connected"})
}

func (m *Module) syncAll(c *gin.Context) {
	res, err := m.service.SyncAll(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

func (m *Module) syncOne(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if httpkit.HandleError(c, m.service.SyncLead(c.Request.Context(), id)) {
		return
	}
	httpkit.OK(c, gin.H{"message": "synced"})
}

func (m *Module) mapping(c *gin.Context) {
	httpkit.OK(c, m.service.Mappings())
}

func (m *Module) stats(c *gin.Context) {
	res, err := m.service.ComputeStats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

func (m *Module) enrich(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	res, err := m.service.EnrichLead(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}
