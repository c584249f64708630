package resourceRepo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"reservo/config"
	"reservo/database"
	"reservo/models"
)

// ErrNotFound is returned when no resource matches the given id.
var ErrNotFound = errors.New("resource not found")

// MongoResourceRepo implements ResourceRepository using MongoDB.
type MongoResourceRepo struct {
	coll *mongo.Collection
}

// NewMongoResourceRepo creates a new instance of ResourceRepository using MongoDB.
func NewMongoResourceRepo() ResourceRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("resources")
	repo := &MongoResourceRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		// Index creation failure is not fatal; queries still work, just slower.
		log.Printf("resource repo: %v", err)
	}
	return repo
}

func (r *MongoResourceRepo) GetByID(id string) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var res models.Resource
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch resource with id %s: %w", id, err)
	}
	return &res, nil
}

func (r *MongoResourceRepo) ListByOwner(ownerID string) ([]models.Resource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list resources for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)
	var resources []models.Resource
	for cursor.Next(ctx) {
		var res models.Resource
		if err := cursor.Decode(&res); err != nil {
			return nil, fmt.Errorf("failed to decode resource: %w", err)
		}
		resources = append(resources, res)
	}
	return resources, nil
}

func (r *MongoResourceRepo) Create(res *models.Resource) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

func (r *MongoResourceRepo) Update(res *models.Resource) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res.UpdatedAt = time.Now()
	filter := bson.M{"id": res.ID}
	result, err := r.coll.ReplaceOne(ctx, filter, res)
	if err != nil {
		return fmt.Errorf("failed to update resource %s: %w", res.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoResourceRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete resource %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
