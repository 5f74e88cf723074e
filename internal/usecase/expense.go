package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/expense-tracker-api/internal/model"
	"github.com/vasapolrittideah/expense-tracker-api/internal/repository"
)

// ExpenseUsecase defines the interface for expense ledger use cases.
type ExpenseUsecase interface {
	AddExpense(ctx context.Context, userID string, params AddExpenseParams) (*model.Expense, error)
	ListExpenses(ctx context.Context, userID string) ([]*model.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error
}

// AddExpenseParams defines the parameters for recording an expense entry.
type AddExpenseParams struct {
	Icon     string
	Category string
	Amount   float64
	Date     time.Time
}

type expenseUsecase struct {
	expenseRepo repository.ExpenseRepository
}

func NewExpenseUsecase(expenseRepo repository.ExpenseRepository) ExpenseUsecase {
	return &expenseUsecase{expenseRepo: expenseRepo}
}

func (u *expenseUsecase) AddExpense(
	ctx context.Context,
	userID string,
	params AddExpenseParams,
) (*model.Expense, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return u.expenseRepo.CreateExpense(ctx, &model.Expense{
		UserID:   ownerID,
		Icon:     params.Icon,
		Category: params.Category,
		Amount:   params.Amount,
		Date:     params.Date,
	})
}

func (u *expenseUsecase) ListExpenses(ctx context.Context, userID string) ([]*model.Expense, error) {
	return u.expenseRepo.ListExpenses(ctx, userID, repository.FilterEntriesParams{})
}

func (u *expenseUsecase) DeleteExpense(ctx context.Context, userID, id string) error {
	err := u.expenseRepo.DeleteExpense(ctx, userID, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrEntryNotFound
	}

	return err
}
