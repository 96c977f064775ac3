package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	cleaningerrors "datacleaner/internal/cleaning/errors"
	"datacleaner/pkg/config"
	"datacleaner/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Cleaning_runs"
)

type CleaningRunRepository interface {
	Create(ctx context.Context, run *model.CleaningRun) error
	FindByID(ctx context.Context, id string) (*model.CleaningRun, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.CleaningRun, error)
	Count(ctx context.Context) (int64, error)
}

type mongoCleaningRunRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCleaningRunRepository(cfg *config.Config) CleaningRunRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCleaningRunRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds ctx by timeout, keeping an earlier caller deadline.
func (r *mongoCleaningRunRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCleaningRunRepository) Create(ctx context.Context, run *model.CleaningRun) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.CreatedAt = run.CreatedAt.Truncate(time.Millisecond)

	run.ID = ""
	result, err := r.collection.InsertOne(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to create cleaning run: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		run.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCleaningRunRepository) FindByID(ctx context.Context, id string) (*model.CleaningRun, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", cleaningerrors.ErrInvalidID, id)
	}

	var run model.CleaningRun
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&run)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", cleaningerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find cleaning run: %w", err)
	}
	return &run, nil
}

func (r *mongoCleaningRunRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.CleaningRun, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query cleaning runs: %w", err)
	}
	defer cursor.Close(ctx)

	var runs []*model.CleaningRun
	if err = cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("failed to decode cleaning runs: %w", err)
	}
	return runs, nil
}

func (r *mongoCleaningRunRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count cleaning runs: %w", err)
	}
	return count, nil
}
