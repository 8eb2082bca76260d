// Package handler exposes the lead capture and automation endpoints over gin.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"realty_leads_backend/internal/automation"
	"realty_leads_backend/internal/leads/service"
	"realty_leads_backend/internal/leads/transport"
	"realty_leads_backend/platform/httpkit"
	"realty_leads_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// AutomationStatus is the slice of the automation engine the status endpoint
// reads.
type AutomationStatus interface {
	Started() bool
	Status() []automation.TaskStatus
}

type Handler struct {
	svc    *service.Service
	engine AutomationStatus
	val    *validator.Validator
}

func New(svc *service.Service, engine AutomationStatus, val *validator.Validator) *Handler {
	return &Handler{svc: svc, engine: engine, val: val}
}

// RegisterRoutes mounts all lead routes on the API group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	leads := api.Group("/leads")
	leads.POST("", h.Create)
	leads.GET("", h.List)
	leads.GET("/:id", h.GetByID)
	leads.PUT("/:id", h.Update)
	leads.GET("/:id/tracking", h.TrackingHistory)

	api.GET("/automation/status", h.AutomationStatus)

	analytics := api.Group("/analytics")
	analytics.GET("/daily", h.DailyStats)
	analytics.GET("/dashboard", h.Dashboard)
	analytics.GET("/leads/sources", h.SourceBreakdown)
	analytics.GET("/conversion-funnel", h.ConversionFunnel)
	analytics.GET("/lead-quality", h.LeadQuality)
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

	result, err := h.svc.Capture(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, transport.CreateLeadResponse{
		ID:                 result.Lead.ID,
		Score:              result.Lead.Score,
		Tier:               result.Tier,
		Priority:           result.Priority,
		RecommendedActions: result.RecommendedActions,
	})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	leads, err := h.svc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromLeads(leads))
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromLead(lead))
}

// Update lets an agent adjust a lead's status, score or comments.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if req.Empty() {
		httpkit.Error(c, http.StatusBadRequest, "no fields to update", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromLead(lead))
}

func (h *Handler) TrackingHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	events, err := h.svc.TrackingHistory(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromTrackingEvents(events))
}

func (h *Handler) AutomationStatus(c *gin.Context) {
	httpkit.OK(c, gin.H{
		"running": h.engine.Started(),
		"tasks":   h.engine.Status(),
	})
}

// DailyStats reports lead analytics for one UTC day. The date defaults to
// today; pass ?date=YYYY-MM-DD for a specific day.
func (h *Handler) DailyStats(c *gin.Context) {
	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
			return
		}
		day = parsed
	}

	stats, err := h.svc.DailyStats(c.Request.Context(), day)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, stats)
}

// Dashboard reports the combined analytics for the last N days
// (?dateRange=N, default 30).
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.svc.Dashboard(c.Request.Context(), dateRangeDays(c))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	quality := transport.NewQualityResponse(stats.Quality)
	httpkit.OK(c, transport.DashboardResponse{
		DateRangeDays:     stats.Days,
		Funnel:            stats.Funnel,
		OverallConversion: transport.NewFunnelResponse(stats.Funnel).ConversionRates.OverallConversion,
		Sources:           transport.FromSourceStats(stats.Sources),
		Trends:            stats.Trends,
		Quality:           quality,
		Campaigns:         stats.Campaigns,
	})
}

// SourceBreakdown reports per-channel volume, quality and conversion.
func (h *Handler) SourceBreakdown(c *gin.Context) {
	stats, err := h.svc.SourceBreakdown(c.Request.Context(), dateRangeDays(c))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.FromSourceStats(stats))
}

// ConversionFunnel reports cumulative pipeline-stage counts and the
// stage-to-stage conversion rates.
func (h *Handler) ConversionFunnel(c *gin.Context) {
	funnel, err := h.svc.ConversionFunnel(c.Request.Context(), dateRangeDays(c))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.NewFunnelResponse(funnel))
}

// LeadQuality reports the score-band distribution.
func (h *Handler) LeadQuality(c *gin.Context) {
	quality, err := h.svc.LeadQuality(c.Request.Context(), dateRangeDays(c))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.NewQualityResponse(quality))
}

func dateRangeDays(c *gin.Context) int {
	days, _ := strconv.Atoi(c.DefaultQuery("dateRange", "30"))
	return days
}
