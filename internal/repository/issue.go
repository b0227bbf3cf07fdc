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

type IssueRepository struct {
	collection *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) *IssueRepository {
	return &IssueRepository{
		collection: db.Collection(store.CollectionIssues),
	}
}

func (r *IssueRepository) Create(issue *models.Issue) (*models.Issue, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, issue)
	if err != nil {
		return nil, err
	}

	issue.ID = result.InsertedID.(primitive.ObjectID)
	return issue, nil
}

func (r *IssueRepository) FindByID(organisationID, id string) (*models.Issue, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid issue ID")
	}

	var issue models.Issue
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID, "organisation_id": organisationID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return &issue, nil
}

func (r *IssueRepository) FindByVehicle(organisationID, vehicleID string) ([]*models.Issue, error) {
	vehicleObjectID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, errors.New("invalid vehicle ID")
	}

	return r.find(bson.M{
		"organisation_id": organisationID,
		"vehicle_id":      vehicleObjectID,
	})
}

// FindOpenByVehicle returns the vehicle's issues whose status is anything
// other than done. The vehicle goes back to ready only when this is empty.
func (r *IssueRepository) FindOpenByVehicle(organisationID, vehicleID string) ([]*models.Issue, error) {
	vehicleObjectID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, errors.New("invalid vehicle ID")
	}

	return r.find(bson.M{
		"organisation_id": organisationID,
		"vehicle_id":      vehicleObjectID,
		"status":          bson.M{"$ne": models.IssueStatusDone},
	})
}

func (r *IssueRepository) FindByOrganisation(organisationID string) ([]*models.Issue, error) {
	return r.find(bson.M{"organisation_id": organisationID})
}

func (r *IssueRepository) find(filter bson.M) ([]*models.Issue, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []*models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}

	return issues, nil
}

func (r *IssueRepository) SetStatus(organisationID, id, status string, resolvedAt *time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid issue ID")
	}

	fields := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if resolvedAt != nil {
		fields["resolved_at"] = *resolvedAt
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "organisation_id": organisationID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}

	return nil
}

// DeleteResolvedBefore removes done issues resolved before the cutoff.
func (r *IssueRepository) DeleteResolvedBefore(cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status": models.IssueStatusDone,
		"resolved_at": bson.M{
			"$lt": cutoff,
		},
	}

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

// CreateIndexes creates necessary indexes for the issues collection
func (r *IssueRepository) CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "organisation_id", Value: 1},
				{Key: "vehicle_id", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "resolved_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
