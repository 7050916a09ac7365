// Package handler exposes the leads HTTP surface: intake CRUD plus the
// scored, segmented, and aggregated dashboard views.
package handler

import (
	"net/http"

	"boothlead_backend/internal/leads/repository"
	"boothlead_backend/internal/leads/service"
	"boothlead_backend/internal/leads/transport"
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
	rg.POST("", h.Create)
	rg.GET("/segments", h.Segments)
	rg.GET("/metrics", h.Metrics)
	rg.GET("/hourly", h.Hourly)
	rg.GET("/demographics", h.Demographics)
	rg.GET("/heatmap", h.Heatmap)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/score", h.Score)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, toResponse(lead))
}

func (h *Handler) List(c *gin.Context) {
	var q transport.ListLeadsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	leads, err := h.svc.List(c.Request.Context(), q)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, toResponse(lead))
	}
	httpkit.OK(c, out)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	lead, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(lead))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(lead))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Score(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.svc.ScoreBreakdown(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

func (h *Handler) Segments(c *gin.Context) {
	res, err := h.svc.Segments(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

func (h *Handler) Metrics(c *gin.Context) {
	res, err := h.svc.Metrics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

func (h *Handler) Hourly(c *gin.Context) {
	res, err := h.svc.Hourly(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

func (h *Handler) Demographics(c *gin.Context) {
	res, err := h.svc.Demographics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

func (h *Handler) Heatmap(c *gin.Context) {
	res, err := h.svc.Heatmap(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return uuid.Nil, false
	}
	return id, true
}

func toResponse(l repository.Lead) transport.LeadResponse {
	res := transport.LeadResponse{
		ID:           l.ID,
		CapturedAt:   l.CapturedAt,
		FirstName:    l.FirstName,
		LastName:     l.LastName,
		Email:        l.Email,
		Phone:        l.Phone,
		BusinessName: l.BusinessName,
		BusinessType: string(l.BusinessType),
		Address:      l.Address,
		City:         l.City,
		State:        l.State,
		ZipCode:      l.ZipCode,
		Salesperson:  l.Salesperson,
		BestTime:     l.BestTime,
		Notes:        l.Notes,
		DwellSeconds: l.DwellSeconds,
		PlacedOrder:  l.PlacedOrder,
		OrderNotes:   l.OrderNotes,
		VisitCount:   l.VisitCount,

		Score:           l.Score,
		Grade:           l.Grade,
		EngagementLevel: l.EngagementLevel,
		SyncedToCRM:     l.SyncedToCRM,
		CRMID:           l.CRMID,
	}

	res.Brands = make([]string, 0, len(l.Brands))
	for _, b := range l.Brands {
		res.Brands = append(res.Brands, string(b))
	}
	res.Categories = make([]string, 0, len(l.Categories))
	for _, cat := range l.Categories {
		res.Categories = append(res.Categories, string(cat))
	}
	if l.BoothSection != nil {
		section := string(*l.BoothSection)
		res.BoothSection = &section
	}
	if l.ContactMethod != nil {
		method := string(*l.ContactMethod)
		res.ContactMethod = &method
	}

	return res
}
