package payload

import (
	"time"

	"github.com/vasapolrittideah/expense-tracker-api/internal/model"
	"github.com/vasapolrittideah/expense-tracker-api/internal/usecase"
)

type AddIncomeRequest struct {
	Icon   string  `json:"icon"`
	Source string  `json:"source" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Date   string  `json:"date"   validate:"required"`
}

type AddExpenseRequest struct {
	Icon     string  `json:"icon"`
	Category string  `json:"category" validate:"required"`
	Amount   float64 `json:"amount"   validate:"required,gt=0"`
	Date     string  `json:"date"     validate:"required"`
}

type IncomeResponse struct {
	ID     string    `json:"id"`
	Icon   string    `json:"icon"`
	Source string    `json:"source"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

func NewIncomeResponse(income *model.Income) IncomeResponse {
	return IncomeResponse{
		ID:     income.ID.Hex(),
		Icon:   income.Icon,
		Source: income.Source,
		Amount: income.Amount,
		Date:   income.Date,
	}
}

func NewIncomeListResponse(incomes []*model.Income) []IncomeResponse {
	responses := make([]IncomeResponse, 0, len(incomes))
	for _, income := range incomes {
		responses = append(responses, NewIncomeResponse(income))
	}
	return responses
}

type ExpenseResponse struct {
	ID       string    `json:"id"`
	Icon     string    `json:"icon"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

func NewExpenseResponse(expense *model.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:       expense.ID.Hex(),
		Icon:     expense.Icon,
		Category: expense.Category,
		Amount:   expense.Amount,
		Date:     expense.Date,
	}
}

func NewExpenseListResponse(expenses []*model.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		responses = append(responses, NewExpenseResponse(expense))
	}
	return responses
}

type TransactionResponse struct {
	Type   string    `json:"type"`
	ID     string    `json:"id"`
	Icon   string    `json:"icon"`
	Label  string    `json:"label"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

type PeriodIncomeResponse struct {
	Total        float64          `json:"total"`
	Transactions []IncomeResponse `json:"transactions"`
}

type PeriodExpenseResponse struct {
	Total        float64           `json:"total"`
	Transactions []ExpenseResponse `json:"transactions"`
}

type DashboardResponse struct {
	TotalBalance       float64               `json:"totalBalance"`
	TotalIncome        float64               `json:"totalIncome"`
	TotalExpense       float64               `json:"totalExpense"`
	Last60DaysIncome   PeriodIncomeResponse  `json:"last60DaysIncome"`
	Last30DaysExpenses PeriodExpenseResponse `json:"last30DaysExpenses"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
}

func NewDashboardResponse(summary *usecase.DashboardSummary) DashboardResponse {
	recent := make([]TransactionResponse, 0, len(summary.RecentTransactions))
	for _, tx := range summary.RecentTransactions {
		recent = append(recent, TransactionResponse{
			Type:   tx.Type,
			ID:     tx.ID,
			Icon:   tx.Icon,
			Label:  tx.Label,
			Amount: tx.Amount,
			Date:   tx.Date,
		})
	}

	return DashboardResponse{
		TotalBalance: summary.TotalBalance(),
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		Last60DaysIncome: PeriodIncomeResponse{
			Total:        summary.Last60DaysIncomeTotal,
			Transactions: NewIncomeListResponse(summary.Last60DaysIncomes),
		},
		Last30DaysExpenses: PeriodExpenseResponse{
			Total:        summary.Last30DaysExpenseTotal,
			Transactions: NewExpenseListResponse(summary.Last30DaysExpenses),
		},
		RecentTransactions: recent,
	}
}
