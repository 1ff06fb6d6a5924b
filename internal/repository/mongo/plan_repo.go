// internal/repository/mongo/plan_repo.go
package mongo

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new plan archive repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a generated plan.
func (r *mongoPlanRepository) Create(ctx context.Context, record *domain.PlanRecord) (primitive.ObjectID, error) {
	if record.PlanID == "" || record.Source == "" {
		return primitive.NilObjectID, errors.New("plan record requires planId and source")
	}
	record.ID = primitive.NewObjectID()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByPlanID retrieves a single archived plan by its public plan id.
func (r *mongoPlanRepository) GetByPlanID(ctx context.Context, planID string) (*domain.PlanRecord, error) {
	var record domain.PlanRecord
	err := r.collection.FindOne(ctx, bson.M{"planId": planID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListByUserID retrieves a user's plans, newest first.
func (r *mongoPlanRepository) ListByUserID(ctx context.Context, userID string, limit int64) ([]domain.PlanRecord, error) {
	records := []domain.PlanRecord{}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SetExportKey remembers where the plan was exported to.
func (r *mongoPlanRepository) SetExportKey(ctx context.Context, planID, exportKey string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"planId": planID},
		bson.M{"$set": bson.M{"exportKey": exportKey}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a plan owned by userID.
func (r *mongoPlanRepository) Delete(ctx context.Context, planID, userID string) error {
	if planID == "" || userID == "" {
		return errors.New("plan ID and user ID are required for deletion")
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"planId": planID, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection, logger *zap.Logger) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// library listing: a user's plans, newest first
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetSparse(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("failed to create indexes", zap.String("collection", collection.Name()), zap.Error(err))
	}
}

// PlanCollection returns the collection used by the plan repository.
func PlanCollection(db *mongo.Database) *mongo.Collection {
	return db.Collection(planCollectionName)
}
