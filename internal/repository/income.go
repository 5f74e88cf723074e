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

// IncomeRepository defines the interface for income-related database operations.
type IncomeRepository interface {
	CreateIncome(ctx context.Context, income *model.Income) (*model.Income, error)
	ListIncomes(ctx context.Context, userID string, params FilterEntriesParams) ([]*model.Income, error)
	DeleteIncome(ctx context.Context, userID, id string) error
	TotalIncomeAmount(ctx context.Context, userID string, since *time.Time) (float64, error)
}

// FilterEntriesParams defines the parameters for filtering ledger entries.
// Entries are always scoped to one user and sorted by date, newest first.
type FilterEntriesParams struct {
	Since *time.Time
	Limit int64
}

const incomeCollection = "incomes"

type incomeMongoRepository struct {
	db *mongo.Database
}

func NewIncomeMongoRepository(db *mongo.Database) IncomeRepository {
	return &incomeMongoRepository{db: db}
}

func (r *incomeMongoRepository) CreateIncome(ctx context.Context, income *model.Income) (*model.Income, error) {
	now := time.Now()
	income.CreatedAt = now
	income.UpdatedAt = now

	result, err := r.db.Collection(incomeCollection).InsertOne(ctx, income)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		income.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return income, nil
}

func (r *incomeMongoRepository) ListIncomes(
	ctx context.Context,
	userID string,
	params FilterEntriesParams,
) ([]*model.Income, error) {
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

	cursor, err := r.db.Collection(incomeCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var incomes []*model.Income
	for cursor.Next(ctx) {
		var income model.Income
		if err := cursor.Decode(&income); err != nil {
			return nil, err
		}
		incomes = append(incomes, &income)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return incomes, nil
}

func (r *incomeMongoRepository) DeleteIncome(ctx context.Context, userID, id string) error {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	entryID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	// Scoping by owner makes deleting someone else's entry indistinguishable
	// from deleting a missing one.
	result := r.db.Collection(incomeCollection).FindOneAndDelete(
		ctx,
		bson.M{"_id": entryID, "user_id": ownerID},
	)

	return result.Err()
}

func (r *incomeMongoRepository) TotalIncomeAmount(
	ctx context.Context,
	userID string,
	since *time.Time,
) (float64, error) {
	return sumAmounts(ctx, r.db.Collection(incomeCollection), userID, since)
}

// sumAmounts aggregates the amount field of one user's entries, optionally
// restricted to entries dated at or after since.
func sumAmounts(ctx context.Context, collection *mongo.Collection, userID string, since *time.Time) (float64, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return 0, mongo.ErrNoDocuments
	}

	match := bson.M{"user_id": ownerID}
	if since != nil {
		match["date"] = bson.M{"$gte": *since}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}

	if len(results) == 0 {
		return 0, nil
	}

	return results[0].Total, nil
}
