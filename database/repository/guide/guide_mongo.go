package guideRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pescalia/database"
	"pescalia/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no guide matches the query.
var ErrNotFound = errors.New("guide not found")

// MongoGuideRepo implements GuideRepository using MongoDB.
type MongoGuideRepo struct {
	coll *mongo.Collection
}

// NewMongoGuideRepo creates a new instance of GuideRepository using MongoDB.
func NewMongoGuideRepo() GuideRepository {
	return &MongoGuideRepo{coll: database.Collection("guides")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoGuideRepo) GetByID(id string) (*models.Guide, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var guide models.Guide
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&guide); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch guide with id %s: %w", id, err)
	}
	return &guide, nil
}

func (r *MongoGuideRepo) GetAll(projection bson.M) ([]models.Guide, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	findOpts := options.Find()
	if projection != nil {
		findOpts.SetProjection(projection)
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve guides: %w", err)
	}
	defer cursor.Close(ctx)

	var guides []models.Guide
	for cursor.Next(ctx) {
		var g models.Guide
		if err := cursor.Decode(&g); err != nil {
			return nil, fmt.Errorf("failed to decode guide: %w", err)
		}
		guides = append(guides, g)
	}
	return guides, nil
}

// GetMostRecentByOwner sorts on createdAt descending so the newest guide
// record wins when a user owns more than one.
func (r *MongoGuideRepo) GetMostRecentByOwner(ownerUserID string) (*models.Guide, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var guide models.Guide
	filter := bson.M{"ownerUserId": ownerUserID}
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&guide); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch guide for owner %s: %w", ownerUserID, err)
	}
	return &guide, nil
}

func (r *MongoGuideRepo) Create(guide *models.Guide) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, guide); err != nil {
		return fmt.Errorf("failed to create guide: %w", err)
	}
	return nil
}

func (r *MongoGuideRepo) Update(guide *models.Guide) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": guide.ID}
	update := bson.M{"$set": guide}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update guide with id %s: %w", guide.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoGuideRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update guide with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoGuideRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete guide with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
