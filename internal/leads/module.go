// Package leads wires the lead capture bounded context: repository, scoring,
// capture service and HTTP handlers.
package leads

import (
	"realty_leads_backend/internal/events"
	"realty_leads_backend/internal/leads/handler"
	"realty_leads_backend/internal/leads/repository"
	"realty_leads_backend/internal/leads/service"
	"realty_leads_backend/platform/logger"
	"realty_leads_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context.
type Module struct {
	Repository *repository.Repository
	Service    *service.Service
	handler    *handler.Handler
}

// NewModule creates the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, engine handler.AutomationStatus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)

	return &Module{
		Repository: repo,
		Service:    svc,
		handler:    handler.New(svc, engine, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes mounts the lead routes on the API group.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	m.handler.RegisterRoutes(api)
}
