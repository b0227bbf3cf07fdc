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

type InspectionRepository struct {
	collection *mongo.Collection
}

func NewInspectionRepository(db *mongo.Database) *InspectionRepository {
	return &InspectionRepository{
		collection: db.Collection(store.CollectionInspections),
	}
}

func (r *InspectionRepository) Create(inspection *models.Inspection) (*models.Inspection, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, inspection)
	if err != nil {
		return nil, err
	}

	inspection.ID = result.InsertedID.(primitive.ObjectID)
	return inspection, nil
}

func (r *InspectionRepository) FindByVehicle(organisationID, vehicleID string) ([]*models.Inspection, error) {
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

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var inspections []*models.Inspection
	if err := cursor.All(ctx, &inspections); err != nil {
		return nil, err
	}

	return inspections, nil
}
