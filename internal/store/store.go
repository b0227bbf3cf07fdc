package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names used across the backend.
const (
	CollectionFloats      = "floats"
	CollectionExpenses    = "expenses"
	CollectionVehicles    = "vehicles"
	CollectionTours       = "tours"
	CollectionIssues      = "issues"
	CollectionInspections = "inspections"
	CollectionUsers       = "users"
)

var (
	// ErrNotFound is returned when a point read matches no document.
	ErrNotFound = errors.New("document not found")
	// ErrUnavailable is returned when a transaction could not be committed
	// after the driver exhausted its conflict retries.
	ErrUnavailable = errors.New("storage unavailable")
)

// Txn is the capability handle passed into a transactional function. Every
// operation performed through it commits or aborts as one unit; a Get inside
// the transaction observes the transaction's own snapshot, never a value
// read before the transaction began.
type Txn interface {
	Get(collection string, id primitive.ObjectID, dest interface{}) error
	Insert(collection string, doc interface{}) error
	Update(collection string, id primitive.ObjectID, fields bson.M) error
	Delete(collection string, id primitive.ObjectID) error
}

// TxnRunner runs a function atomically against the store. Conflicting
// concurrent transactions are retried by the driver; business errors
// returned from fn abort the transaction and pass through unchanged.
type TxnRunner interface {
	RunTransaction(ctx context.Context, fn func(Txn) error) error
}

// MongoStore is the MongoDB-backed document store adapter.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		client: db.Client(),
		db:     db,
	}
}

// RunTransaction executes fn inside a single MongoDB transaction. Write
// conflicts and transient commit errors are retried by the driver; once
// retries are exhausted the failure surfaces as ErrUnavailable.
func (s *MongoStore) RunTransaction(ctx context.Context, fn func(Txn) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(&mongoTxn{ctx: sc, db: s.db})
	})
	if err == nil {
		return nil
	}

	// Errors raised by fn itself must reach the caller unchanged; only
	// driver-level failures are translated.
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

type mongoTxn struct {
	ctx mongo.SessionContext
	db  *mongo.Database
}

func (t *mongoTxn) Get(collection string, id primitive.ObjectID, dest interface{}) error {
	err := t.db.Collection(collection).FindOne(t.ctx, bson.M{"_id": id}).Decode(dest)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

func (t *mongoTxn) Insert(collection string, doc interface{}) error {
	_, err := t.db.Collection(collection).InsertOne(t.ctx, doc)
	return err
}

func (t *mongoTxn) Update(collection string, id primitive.ObjectID, fields bson.M) error {
	result, err := t.db.Collection(collection).UpdateOne(t.ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *mongoTxn) Delete(collection string, id primitive.ObjectID) error {
	result, err := t.db.Collection(collection).DeleteOne(t.ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
