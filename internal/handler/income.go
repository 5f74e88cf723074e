package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/expense-tracker-api/internal/payload"
	"github.com/vasapolrittideah/expense-tracker-api/internal/usecase"
	"github.com/vasapolrittideah/expense-tracker-api/shared/middleware"
	"github.com/vasapolrittideah/expense-tracker-api/shared/validation"
)

// IncomeHandler serves the income ledger endpoints.
type IncomeHandler struct {
	incomeUsecase usecase.IncomeUsecase
	validator     *validation.Validator
	logger        *zerolog.Logger
}

func NewIncomeHandler(
	incomeUsecase usecase.IncomeUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *IncomeHandler {
	return &IncomeHandler{
		incomeUsecase: incomeUsecase,
		validator:     validator,
		logger:        logger,
	}
}

func (h *IncomeHandler) AddIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization token is missing")
		return
	}

	var req payload.AddIncomeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseEntryDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	income, err := h.incomeUsecase.AddIncome(r.Context(), userID, usecase.AddIncomeParams{
		Icon:   req.Icon,
		Source: req.Source,
		Amount: req.Amount,
		Date:   date,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to add income")
		respondErrorDetail(w, http.StatusInternalServerError, "Error adding income", err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.NewIncomeResponse(income))
}

func (h *IncomeHandler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization token is missing")
		return
	}

	incomes, err := h.incomeUsecase.ListIncomes(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list incomes")
		respondError(w, http.StatusInternalServerError, "Error fetching income entries")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewIncomeListResponse(incomes))
}

func (h *IncomeHandler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization token is missing")
		return
	}

	err := h.incomeUsecase.DeleteIncome(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrEntryNotFound) {
			respondError(w, http.StatusNotFound, "Income entry not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to delete income")
		respondError(w, http.StatusInternalServerError, "Error deleting income entry")
		return
	}

	respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "Income entry deleted successfully"})
}

func (h *IncomeHandler) ExportIncomes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization token is missing")
		return
	}

	incomes, err := h.incomeUsecase.ListIncomes(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to export incomes")
		respondError(w, http.StatusInternalServerError, "Error exporting income entries")
		return
	}

	rows := make([]exportRow, 0, len(incomes))
	for _, income := range incomes {
		rows = append(rows, exportRow{
			Label:  income.Source,
			Amount: income.Amount,
			Date:   income.Date,
		})
	}

	if err := writeExcel(w, "Income", "Source", "income_details.xlsx", rows); err != nil {
		h.logger.Error().Err(err).Msg("failed to write income excel")
	}
}

// parseEntryDate accepts the SPA's date-input format and RFC 3339.
func parseEntryDate(value string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date, nil
	}

	return time.Parse(time.RFC3339, value)
}
