package repository

import (
	"context"
	"errors"
	"fleetops-backend/internal/models"
	"fleetops-backend/internal/store"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ExpenseRepository struct {
	collection *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{
		collection: db.Collection(store.CollectionExpenses),
	}
}

func (r *ExpenseRepository) FindByID(organisationID, id string) (*models.Expense, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid expense ID")
	}

	var expense models.Expense
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID, "organisation_id": organisationID}).Decode(&expense)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return &expense, nil
}

func (r *ExpenseRepository) FindByOrganisation(organisationID string) ([]*models.Expense, error) {
	return r.find(bson.M{"organisation_id": organisationID})
}

func (r *ExpenseRepository) FindByDriver(organisationID, driverID string) ([]*models.Expense, error) {
	return r.find(bson.M{"organisation_id": organisationID, "driver_id": driverID})
}

func (r *ExpenseRepository) FindByFloat(organisationID, floatID string) ([]*models.Expense, error) {
	floatObjectID, err := primitive.ObjectIDFromHex(floatID)
	if err != nil {
		return nil, errors.New("invalid float ID")
	}

	return r.find(bson.M{"organisation_id": organisationID, "float_id": floatObjectID})
}

func (r *ExpenseRepository) find(filter bson.M) ([]*models.Expense, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var expenses []*models.Expense
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

// SetStatusIfPending flips a pending expense to the given status exactly
// once. Returns false when the expense exists but was already processed.
func (r *ExpenseRepository) SetStatusIfPending(organisationID, id, status, approvedBy string, approvedAt time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, errors.New("invalid expense ID")
	}

	filter := bson.M{
		"_id":             objectID,
		"organisation_id": organisationID,
		"status":          models.ExpenseStatusPending,
	}

	update := bson.M{
		"$set": bson.M{
			"status":      status,
			"approved_by": approvedBy,
			"approved_at": approvedAt,
			"updated_at":  approvedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount > 0, nil
}

// CreateIndexes creates necessary indexes for the expenses collection
func (r *ExpenseRepository) CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "organisation_id", Value: 1},
				{Key: "float_id", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "organisation_id", Value: 1},
				{Key: "driver_id", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
