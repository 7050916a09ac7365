// Package leads provides the lead capture bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"boothlead_backend/internal/events"
	apphttp "boothlead_backend/internal/http"
	"boothlead_backend/internal/leads/handler"
	"boothlead_backend/internal/leads/repository"
	"boothlead_backend/internal/leads/service"
	"boothlead_backend/platform/logger"
	"boothlead_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes mounts the leads routes on /api/v1/leads.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/leads"))
}

// Service exposes the leads service for other modules (CRM sync, exports,
// scheduler tasks) that consume scored leads.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository exposes the repository for modules that need row-level access
// (CRM sync bookkeeping).
func (m *Module) Repository() *repository.Repository {
	return m.repo
}
