package insights

import (
	"net/http"

	apphttp "boothlead_backend/internal/http"
	"boothlead_backend/internal/leads/domain"
	"boothlead_backend/internal/leads/repository"
	"boothlead_backend/internal/leads/scoring"
	"boothlead_backend/platform/httpkit"
	"boothlead_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Module is the insights bounded context module implementing http.Module.
type Module struct {
	generator *Generator
	leads     *repository.Repository
	log       *logger.Logger
}

func NewModule(generator *Generator, leadsRepo *repository.Repository, log *logger.Logger) *Module {
	return &Module{generator: generator, leads: leadsRepo, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "insights"
}

// RegisterRoutes mounts the insight routes on /api/v1/insights.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/insights")
	rg.GET("/summary", m.summary)
	rg.GET("/lead/:id", m.lead)
}

func (m *Module) lead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	stored, err := m.leads.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			httpkit.Error(c, http.StatusNotFound, "lead not found", nil)
			return
		}
		m.log.DatabaseError("get lead for insights", err)
		httpkit.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}

	breakdown := scoring.Score(stored.Lead)
	text, source := m.generator.Generate(c.Request.Context(), stored.Lead, breakdown)
	httpkit.OK(c, gin.H{
		"leadId":  id,
		"insight": text,
		"source":  source,
	})
}

func (m *Module) summary(c *gin.Context) {
	stored, err := m.leads.ListAll(c.Request.Context())
	if err != nil {
		m.log.DatabaseError("list leads for summary", err)
		httpkit.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}

	leadSnapshots := make([]domain.Lead, 0, len(stored))
	for _, s := range stored {
		leadSnapshots = append(leadSnapshots, s.Lead)
	}
	httpkit.OK(c, gin.H{
		"leadCount": len(leadSnapshots),
		"summary":   BulkSummary(leadSnapshots),
	})
}
