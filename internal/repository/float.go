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

type FloatRepository struct {
	collection *mongo.Collection
}

func NewFloatRepository(db *mongo.Database) *FloatRepository {
	return &FloatRepository{
		collection: db.Collection(store.CollectionFloats),
	}
}

func (r *FloatRepository) FindByID(organisationID, id string) (*models.Float, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid float ID")
	}

	var float models.Float
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID, "organisation_id": organisationID}).Decode(&float)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return &float, nil
}

// FindActiveByDriver returns every float still marked active for the driver.
// The issuance invariant keeps this at one document, but the query does not
// assume it.
func (r *FloatRepository) FindActiveByDriver(organisationID, driverID string) ([]*models.Float, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"organisation_id": organisationID,
		"driver_id":       driverID,
		"active":          true,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var floats []*models.Float
	if err := cursor.All(ctx, &floats); err != nil {
		return nil, err
	}

	return floats, nil
}

func (r *FloatRepository) FindByOrganisation(organisationID string) ([]*models.Float, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"organisation_id": organisationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var floats []*models.Float
	if err := cursor.All(ctx, &floats); err != nil {
		return nil, err
	}

	return floats, nil
}

func (r *FloatRepository) FindByDriver(organisationID, driverID string) ([]*models.Float, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"organisation_id": organisationID,
		"driver_id":       driverID,
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var floats []*models.Float
	if err := cursor.All(ctx, &floats); err != nil {
		return nil, err
	}

	return floats, nil
}

// Close marks the float inactive and stamps closed_at. The remaining amount
// is left untouched; a nonzero balance on a closed float is reconciled
// out-of-band.
func (r *FloatRepository) Close(organisationID, id string, closedAt time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid float ID")
	}

	update := bson.M{
		"$set": bson.M{
			"active":     false,
			"closed_at":  closedAt,
			"updated_at": closedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID, "organisation_id": organisationID}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}

	return nil
}

// CreateIndexes creates necessary indexes for the floats collection
func (r *FloatRepository) CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "organisation_id", Value: 1},
				{Key: "driver_id", Value: 1},
				{Key: "active", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "organisation_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
