package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/expense-tracker-api/internal/payload"
	"github.com/vasapolrittideah/expense-tracker-api/internal/usecase"
	"github.com/vasapolrittideah/expense-tracker-api/shared/middleware"
)

// DashboardHandler serves the dashboard summary endpoint.
type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
	logger           *zerolog.Logger
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase, logger *zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
		logger:           logger,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization token is missing")
		return
	}

	summary, err := h.dashboardUsecase.GetDashboard(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build dashboard")
		respondError(w, http.StatusInternalServerError, "Error fetching dashboard data")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewDashboardResponse(summary))
}
