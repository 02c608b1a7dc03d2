package directoryRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/database"
	"github.com/EternalGerms/trampoaqui-sub001/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDirectoryRepo implements both directory interfaces against the
// identity service's collections.
type MongoDirectoryRepo struct {
	users     *mongo.Collection
	providers *mongo.Collection
}

// NewMongoDirectoryRepo creates a read-only directory over the users and
// providers collections.
func NewMongoDirectoryRepo() *MongoDirectoryRepo {
	db := database.DB()
	return &MongoDirectoryRepo{
		users:     db.Collection("users"),
		providers: db.Collection("providers"),
	}
}

// GetUserByID retrieves a user display record by ID.
func (r *MongoDirectoryRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.users.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching user %s: %w", id, err)
	}
	return &user, nil
}

// GetProviderByID retrieves a provider display record by ID.
func (r *MongoDirectoryRepo) GetProviderByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	err := r.providers.FindOne(ctx, bson.M{"id": id}).Decode(&provider)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching provider %s: %w", id, err)
	}
	return &provider, nil
}
