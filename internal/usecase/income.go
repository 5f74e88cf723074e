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

// IncomeUsecase defines the interface for income ledger use cases.
type IncomeUsecase interface {
	AddIncome(ctx context.Context, userID string, params AddIncomeParams) (*model.Income, error)
	ListIncomes(ctx context.Context, userID string) ([]*model.Income, error)
	DeleteIncome(ctx context.Context, userID, id string) error
}

// AddIncomeParams defines the parameters for recording an income entry.
type AddIncomeParams struct {
	Icon   string
	Source string
	Amount float64
	Date   time.Time
}

var ErrEntryNotFound = errors.New("entry not found")

type incomeUsecase struct {
	incomeRepo repository.IncomeRepository
}

func NewIncomeUsecase(incomeRepo repository.IncomeRepository) IncomeUsecase {
	return &incomeUsecase{incomeRepo: incomeRepo}
}

func (u *incomeUsecase) AddIncome(
	ctx context.Context,
	userID string,
	params AddIncomeParams,
) (*model.Income, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return u.incomeRepo.CreateIncome(ctx, &model.Income{
		UserID: ownerID,
		Icon:   params.Icon,
		Source: params.Source,
		Amount: params.Amount,
		Date:   params.Date,
	})
}

func (u *incomeUsecase) ListIncomes(ctx context.Context, userID string) ([]*model.Income, error) {
	return u.incomeRepo.ListIncomes(ctx, userID, repository.FilterEntriesParams{})
}

func (u *incomeUsecase) DeleteIncome(ctx context.Context, userID, id string) error {
	err := u.incomeRepo.DeleteIncome(ctx, userID, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrEntryNotFound
	}

	return err
}
