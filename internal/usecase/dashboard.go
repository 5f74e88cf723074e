package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/vasapolrittideah/expense-tracker-api/internal/model"
	"github.com/vasapolrittideah/expense-tracker-api/internal/repository"
)

// DashboardUsecase assembles the summary shown on the SPA's landing page.
type DashboardUsecase interface {
	GetDashboard(ctx context.Context, userID string) (*DashboardSummary, error)
}

// Transaction is a ledger entry of either kind, tagged for the merged
// recent-transactions feed.
type Transaction struct {
	Type   string
	ID     string
	Icon   string
	Label  string
	Amount float64
	Date   time.Time
}

// DashboardSummary aggregates both ledgers for one user.
type DashboardSummary struct {
	TotalIncome            float64
	TotalExpense           float64
	Last60DaysIncomeTotal  float64
	Last60DaysIncomes      []*model.Income
	Last30DaysExpenseTotal float64
	Last30DaysExpenses     []*model.Expense
	RecentTransactions     []Transaction
}

// TotalBalance is total income minus total expense.
func (s *DashboardSummary) TotalBalance() float64 {
	return s.TotalIncome - s.TotalExpense
}

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	recentTransactionsPerLedger = 5
)

type dashboardUsecase struct {
	incomeRepo  repository.IncomeRepository
	expenseRepo repository.ExpenseRepository
}

func NewDashboardUsecase(
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
	}
}

func (u *dashboardUsecase) GetDashboard(ctx context.Context, userID string) (*DashboardSummary, error) {
	now := time.Now()
	last60Days := now.AddDate(0, 0, -60)
	last30Days := now.AddDate(0, 0, -30)

	totalIncome, err := u.incomeRepo.TotalIncomeAmount(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	totalExpense, err := u.expenseRepo.TotalExpenseAmount(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	last60DaysIncomeTotal, err := u.incomeRepo.TotalIncomeAmount(ctx, userID, &last60Days)
	if err != nil {
		return nil, err
	}

	last30DaysExpenseTotal, err := u.expenseRepo.TotalExpenseAmount(ctx, userID, &last30Days)
	if err != nil {
		return nil, err
	}

	last60DaysIncomes, err := u.incomeRepo.ListIncomes(ctx, userID, repository.FilterEntriesParams{
		Since: &last60Days,
	})
	if err != nil {
		return nil, err
	}

	last30DaysExpenses, err := u.expenseRepo.ListExpenses(ctx, userID, repository.FilterEntriesParams{
		Since: &last30Days,
	})
	if err != nil {
		return nil, err
	}

	recent, err := u.recentTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalIncome:            totalIncome,
		TotalExpense:           totalExpense,
		Last60DaysIncomeTotal:  last60DaysIncomeTotal,
		Last60DaysIncomes:      last60DaysIncomes,
		Last30DaysExpenseTotal: last30DaysExpenseTotal,
		Last30DaysExpenses:     last30DaysExpenses,
		RecentTransactions:     recent,
	}, nil
}

// recentTransactions merges the five newest entries of each ledger into one
// feed sorted by date, newest first.
func (u *dashboardUsecase) recentTransactions(ctx context.Context, userID string) ([]Transaction, error) {
	incomes, err := u.incomeRepo.ListIncomes(ctx, userID, repository.FilterEntriesParams{
		Limit: recentTransactionsPerLedger,
	})
	if err != nil {
		return nil, err
	}

	expenses, err := u.expenseRepo.ListExpenses(ctx, userID, repository.FilterEntriesParams{
		Limit: recentTransactionsPerLedger,
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(incomes)+len(expenses))
	for _, income := range incomes {
		transactions = append(transactions, Transaction{
			Type:   TransactionTypeIncome,
			ID:     income.ID.Hex(),
			Icon:   income.Icon,
			Label:  income.Source,
			Amount: income.Amount,
			Date:   income.Date,
		})
	}
	for _, expense := range expenses {
		transactions = append(transactions, Transaction{
			Type:   TransactionTypeExpense,
			ID:     expense.ID.Hex(),
			Icon:   expense.Icon,
			Label:  expense.Category,
			Amount: expense.Amount,
			Date:   expense.Date,
		})
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	return transactions, nil
}
