package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/expense-tracker-api/internal/payload"
	"github.com/vasapolrittideah/expense-tracker-api/internal/usecase"
	"github.com/vasapolrittideah/expense-tracker-api/shared/middleware"
	"github.com/vasapolrittideah/expense-tracker-api/shared/validation"
)

// ExpenseHandler serves the expense ledger endpoints.
type ExpenseHandler struct {
	expenseUsecase usecase.ExpenseUsecase
	validator      *validation.Validator
	logger         *zerolog.Logger
}

func NewExpenseHandler(
	expenseUsecase usecase.ExpenseUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *ExpenseHandler {
	return &ExpenseHandler{
		expenseUsecase: expenseUsecase,
		validator:      validator,
		logger:         logger,
	}
}

func (h *ExpenseHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization token is missing")
		return
	}

	var req payload.AddExpenseRequest
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

	expense, err := h.expenseUsecase.AddExpense(r.Context(), userID, usecase.AddExpenseParams{
		Icon:     req.Icon,
		Category: req.Category,
		Amount:   req.Amount,
		Date:     date,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to add expense")
		respondErrorDetail(w, http.StatusInternalServerError, "Error adding expense", err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.NewExpenseResponse(expense))
}

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization token is missing")
		return
	}

	expenses, err := h.expenseUsecase.ListExpenses(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list expenses")
		respondError(w, http.StatusInternalServerError, "Error fetching expense entries")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewExpenseListResponse(expenses))
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization token is missing")
		return
	}

	err := h.expenseUsecase.DeleteExpense(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrEntryNotFound) {
			respondError(w, http.StatusNotFound, "Expense entry not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to delete expense")
		respondError(w, http.StatusInternalServerError, "Error deleting expense entry")
		return
	}

	respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "Expense entry deleted successfully"})
}

func (h *ExpenseHandler) ExportExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization token is missing")
		return
	}

	expenses, err := h.expenseUsecase.ListExpenses(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to export expenses")
		respondError(w, http.StatusInternalServerError, "Error exporting expense entries")
		return
	}

	rows := make([]exportRow, 0, len(expenses))
	for _, expense := range expenses {
		rows = append(rows, exportRow{
			Label:  expense.Category,
			Amount: expense.Amount,
			Date:   expense.Date,
		})
	}

	if err := writeExcel(w, "Expense", "Category", "expense_details.xlsx", rows); err != nil {
		h.logger.Error().Err(err).Msg("failed to write expense excel")
	}
}
