// Package traffic provides the foot traffic bounded context module.
package traffic

import (
	"boothlead_backend/internal/events"
	apphttp "boothlead_backend/internal/http"
	"boothlead_backend/internal/traffic/handler"
	"boothlead_backend/internal/traffic/repository"
	"boothlead_backend/internal/traffic/service"
	"boothlead_backend/platform/logger"
	"boothlead_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the foot traffic bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the traffic module. The LeadCounter comes from the leads
// module so conversion rates can blend traffic with same-day lead counts.
func NewModule(pool *pgxpool.Pool, leads service.LeadCounter, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, eventBus, log)
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "traffic"
}

// RegisterRoutes mounts the traffic routes on /api/v1/traffic.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/traffic"))
}
