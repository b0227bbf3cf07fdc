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

type TourRepository struct {
	collection *mongo.Collection
}

func NewTourRepository(db *mongo.Database) *TourRepository {
	return &TourRepository{
		collection: db.Collection(store.CollectionTours),
	}
}

func (r *TourRepository) Create(tour *models.Tour) (*models.Tour, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, tour)
	if err != nil {
		return nil, err
	}

	tour.ID = result.InsertedID.(primitive.ObjectID)
	return tour, nil
}

func (r *TourRepository) FindByID(organisationID, id string) (*models.Tour, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid tour ID")
	}

	var tour models.Tour
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID, "organisation_id": organisationID}).Decode(&tour)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return &tour, nil
}

// FindByVehicle returns the vehicle's tours ascending by start date, the
// order the maintenance projection walks them in.
func (r *TourRepository) FindByVehicle(organisationID, vehicleID string) ([]models.Tour, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vehicleObjectID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, errors.New("invalid vehicle ID")
	}

	filter := bson.M{
		"organisation_id": organisationID,
		"vehicle_id":      vehicleObjectID,
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tours []models.Tour
	if err := cursor.All(ctx, &tours); err != nil {
		return nil, err
	}

	return tours, nil
}

func (r *TourRepository) FindByOrganisation(organisationID string) ([]models.Tour, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"organisation_id": organisationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tours []models.Tour
	if err := cursor.All(ctx, &tours); err != nil {
		return nil, err
	}

	return tours, nil
}

// CreateIndexes creates necessary indexes for the tours collection
func (r *TourRepository) CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "organisation_id", Value: 1},
				{Key: "vehicle_id", Value: 1},
				{Key: "start_date", Value: 1},
			},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
