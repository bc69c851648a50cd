package hostRepo

import (
	"context"
	"fmt"
	"time"

	"calendary/database"
	"calendary/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHostRepo implements HostRepository using MongoDB.
type MongoHostRepo struct {
	coll *mongo.Collection
}

// NewMongoHostRepo creates a HostRepository backed by the hosts collection.
func NewMongoHostRepo() HostRepository {
	coll := database.MongoClient.Database("calendary").Collection("hosts")
	repo := &MongoHostRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create host indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoHostRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create host indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a host by its unique ID.
func (r *MongoHostRepo) GetByID(id string) (*models.HostProfile, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByUsername retrieves a host by its public booking-page handle.
func (r *MongoHostRepo) GetByUsername(username string) (*models.HostProfile, error) {
	return r.findOne(bson.M{"username": username})
}

func (r *MongoHostRepo) findOne(filter bson.M) (*models.HostProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var host models.HostProfile
	if err := r.coll.FindOne(ctx, filter).Decode(&host); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch host: %w", err)
	}
	return &host, nil
}

// Create inserts a new host profile.
func (r *MongoHostRepo) Create(host *models.HostProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, host); err != nil {
		return fmt.Errorf("failed to create host %s: %w", host.ID, err)
	}
	return nil
}

// Update replaces an existing host profile.
func (r *MongoHostRepo) Update(host *models.HostProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": host.ID}, host)
	if err != nil {
		return fmt.Errorf("failed to update host %s: %w", host.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAvailability replaces only the host's weekly schedule.
func (r *MongoHostRepo) UpdateAvailability(id string, av models.Availability) error {
	return r.setField(id, "availability", av)
}

// UpdatePolicy replaces only the host's booking policy.
func (r *MongoHostRepo) UpdatePolicy(id string, policy models.BookingPolicy) error {
	return r.setField(id, "policy", policy)
}

func (r *MongoHostRepo) setField(id, field string, value any) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to update %s for host %s: %w", field, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a host profile by ID.
func (r *MongoHostRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete host %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
