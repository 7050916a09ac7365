package catalog

import (
	"net/http"

	apphttp "boothlead_backend/internal/http"

	"github.com/gin-gonic/gin"
)

// Module serves the static show catalog over HTTP so clients never
// hardcode brand, category, or booth section lists.
type Module struct{}

// NewModule creates the catalog module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// RegisterRoutes mounts catalog routes on /api/v1/catalog.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/catalog")
	group.GET("", m.getCatalog)
}

func (m *Module) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"brands":         Brands(),
		"categories":     Categories(),
		"boothSections":  Sections(),
		"contactMethods": ContactMethods(),
		"salespeople":    Salespeople(),
	})
}
