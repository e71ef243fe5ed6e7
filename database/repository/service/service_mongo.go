package serviceRepo

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

// ErrNotFound is returned when no service matches the query.
var ErrNotFound = errors.New("service not found")

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a new instance of ServiceRepository using MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	return &MongoServiceRepo{coll: database.Collection("services")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// pendingFilter matches every non-approved service: approved == false,
// approved == null, and documents missing the field entirely.
func pendingFilter() bson.M {
	return bson.M{"approved": bson.M{"$ne": true}}
}

func (r *MongoServiceRepo) GetByID(id string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var svc models.Service
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &svc, nil
}

func (r *MongoServiceRepo) ListByGuide(guideID string, includePending bool) ([]models.Service, error) {
	filter := bson.M{"guideId": guideID}
	if !includePending {
		filter["approved"] = true
	}
	return r.find(filter)
}

func (r *MongoServiceRepo) ListPending() ([]models.Service, error) {
	return r.find(pendingFilter())
}

func (r *MongoServiceRepo) CountPendingByGuide(guideID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := pendingFilter()
	filter["guideId"] = guideID
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending services for guide %s: %w", guideID, err)
	}
	return count, nil
}

func (r *MongoServiceRepo) find(filter bson.M) ([]models.Service, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	for cursor.Next(ctx) {
		var s models.Service
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		services = append(services, s)
	}
	return services, nil
}

func (r *MongoServiceRepo) Create(service *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) Update(service *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": service.ID}
	update := bson.M{"$set": service}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", service.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoServiceRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete service with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoServiceRepo) SetApproval(id string, approved bool) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"approved": approved, "updatedAt": time.Now()}}

	// The update also touches updatedAt, so ModifiedCount cannot tell a real
	// transition from a repeat of the same flag. Compare against the
	// document's pre-image instead.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	var before models.Service
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&before); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("failed to set approval for service %s: %w", id, err)
	}
	return before.IsApproved() != approved, nil
}

func (r *MongoServiceRepo) ApproveAllForGuide(guideID string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := pendingFilter()
	filter["guideId"] = guideID
	update := bson.M{"$set": bson.M{"approved": true, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk-approve services for guide %s: %w", guideID, err)
	}
	return result.ModifiedCount, nil
}

func (r *MongoServiceRepo) ApproveAllPending() (int64, error) {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"approved": true, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateMany(ctx, pendingFilter(), update)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk-approve pending services: %w", err)
	}
	return result.ModifiedCount, nil
}
