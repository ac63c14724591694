package handler

import (
	"net/http"

	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

// Summary
// @Summary Dashboard counters
// @Description Content counts by status and the five most recent appointment requests
// @Tags Dashboard
// @Security CookieAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardUsecase.Summary(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", summary)
}
