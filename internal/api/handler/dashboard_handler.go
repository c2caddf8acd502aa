package handler

import (
	"net/http"

	"newsportal/internal/app/service"
	"newsportal/internal/common"

	"github.com/go-chi/chi/v5"
)

type DashboardHandler struct {
	statsService *service.StatsService
}

func NewDashboardHandler(statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.Get("/stats", h.siteStats)
	r.With(adminOnly).Get("/admin", h.adminStats)
}

func (h *DashboardHandler) siteStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.SiteStats(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "Dashboard data fetched successfully", stats)
}

func (h *DashboardHandler) adminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.AdminStats(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "Admin dashboard data fetched successfully", stats)
}
