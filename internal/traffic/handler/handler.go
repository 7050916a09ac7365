// Package handler exposes the foot traffic HTTP surface.
package handler

import (
	"net/http"

	"boothlead_backend/internal/traffic/repository"
	"boothlead_backend/internal/traffic/service"
	"boothlead_backend/internal/traffic/transport"
	"boothlead_backend/platform/httpkit"
	"boothlead_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Record)
	rg.GET("/metrics", h.Metrics)
	rg.DELETE("/:id", h.Delete)
}

func (h *Handler) Record(c *gin.Context) {
	var req transport.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	entry, err := h.svc.Record(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, toResponse(entry))
}

func (h *Handler) List(c *gin.Context) {
	entries, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	out := make([]transport.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toResponse(e))
	}
	httpkit.OK(c, out)
}

func (h *Handler) Metrics(c *gin.Context) {
	res, err := h.svc.ComputeAll(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func toResponse(e repository.Entry) transport.EntryResponse {
	res := transport.EntryResponse{
		ID:         e.ID,
		RecordedAt: e.RecordedAt,
		Count:      e.Count,
		Note:       e.Note,
	}
	if e.BoothSection != nil {
		section := string(*e.BoothSection)
		res.BoothSection = &section
	}
	return res
}
