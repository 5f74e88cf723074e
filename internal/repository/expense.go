package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/expense-tracker-api/internal/model"
)

// ExpenseRepository defines the interface for expense-related database operations.
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	ListExpenses(ctx context.Context, userID string, params FilterEntriesParams) ([]*model.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error
	TotalExpenseAmount(ctx context.Context, userID string, since *time.Time) (float64, error)
}

const expenseCollection = "expenses"

type expenseMongoRepository struct {
	db *mongo.Database
}

func NewExpenseMongoRepository(db *mongo.Database) ExpenseRepository {
	return &expenseMongoRepository{db: db}
}

func (r *expenseMongoRepository) CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	now := time.Now()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	result, err := r.db.Collection(expenseCollection).InsertOne(ctx, expense)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		expense.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return expense, nil
}

func (r *expenseMongoRepository) ListExpenses(
	ctx context.Context,
	userID string,
	params FilterEntriesParams,
) ([]*model.Expense, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	filter := bson.M{"user_id": ownerID}
	if params.Since != nil {
		filter["date"] = bson.M{"$gte": *params.Since}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if params.Limit > 0 {
		findOptions.SetLimit(params.Limit)
	}

	cursor, err := r.db.Collection(expenseCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var expenses []*model.Expense
	for cursor.Next(ctx) {
		var expense model.Expense
		if err := cursor.Decode(&expense); err != nil {
			return nil, err
		}
		expenses = append(expenses, &expense)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (r *expenseMongoRepository) DeleteExpense(ctx context.Context, userID, id string) error {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	entryID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result := r.db.Collection(expenseCollection).FindOneAndDelete(
		ctx,
		bson.M{"_id": entryID, "user_id": ownerID},
	)

	return result.Err()
}

func (r *expenseMongoRepository) TotalExpenseAmount(
	ctx context.Context,
	userID string,
	since *time.Time,
) (float64, error) {
	return sumAmounts(ctx, r.db.Collection(expenseCollection), userID, since)
}
