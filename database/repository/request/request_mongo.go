package requestRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/database"
	"github.com/EternalGerms/trampoaqui-sub001/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRequestRepo implements ServiceRequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo creates a new instance of ServiceRequestRepository using MongoDB.
func NewMongoRequestRepo() ServiceRequestRepository {
	coll := database.DB().Collection("service_requests")
	repo := &MongoRequestRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new request document.
func (r *MongoRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("error creating service request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by its ID.
func (r *MongoRequestRepo) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var req models.ServiceRequest
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching service request %s: %w", id, err)
	}
	return &req, nil
}

// ListByClient retrieves a client's requests, newest first.
func (r *MongoRequestRepo) ListByClient(ctx context.Context, clientID string) ([]models.ServiceRequest, error) {
	return r.list(ctx, bson.M{"clientId": clientID})
}

// ListByProvider retrieves a provider's requests, newest first.
func (r *MongoRequestRepo) ListByProvider(ctx context.Context, providerID string) ([]models.ServiceRequest, error) {
	return r.list(ctx, bson.M{"providerId": providerID})
}

func (r *MongoRequestRepo) list(ctx context.Context, filter bson.M) ([]models.ServiceRequest, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing service requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("error decoding service requests: %w", err)
	}
	return requests, nil
}

// ReplaceVersioned persists the full document guarded by the version the
// caller read. The filter carries both id and version so two concurrent
// writers can never both apply their read-modify-write on the same snapshot.
func (r *MongoRequestRepo) ReplaceVersioned(ctx context.Context, req *models.ServiceRequest) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	readVersion := req.Version
	req.Version = readVersion + 1
	req.UpdatedAt = time.Now().UTC()

	filter := bson.M{"id": req.ID, "version": readVersion}
	res, err := r.coll.ReplaceOne(ctx, filter, req)
	if err != nil {
		req.Version = readVersion
		return fmt.Errorf("error updating service request %s: %w", req.ID, err)
	}
	if res.MatchedCount == 0 {
		req.Version = readVersion
		// Distinguish a missing document from a concurrent writer.
		count, countErr := r.coll.CountDocuments(ctx, bson.M{"id": req.ID})
		if countErr == nil && count == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	return nil
}
