package http

import (
	"net/http"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/auth"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/dashboard"
	"github.com/ghiras-nahda/hris-backend-go/internal/handler/http/response"
)

// DashboardHandler defines the interface for dashboard HTTP handlers
type DashboardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// Get returns the caller's dashboard summary
func (h *dashboardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.dashboardService.Get(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
