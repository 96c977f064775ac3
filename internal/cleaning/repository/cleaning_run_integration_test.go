//go:build integration

package repository_test

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	cleaningerrors "datacleaner/internal/cleaning/errors"
	"datacleaner/internal/cleaning/repository"
	mongoMigration "datacleaner/internal/migrations/mongo"
	"datacleaner/pkg/client"
	"datacleaner/pkg/config"
	"datacleaner/pkg/logger"
	"datacleaner/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultTestMongoURI = "mongodb://localhost:27017"
	defaultTestDBName   = "datacleaner_test"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupStore connects to TEST_MONGO_URI, drops the test database and runs
// the migration so the schema validator is in place.
func setupStore(t *testing.T) (*config.Config, repository.CleaningRunRepository) {
	t.Helper()

	log := logger.New(logger.Config{Output: io.Discard, Service: "test"})
	cfg := &config.Config{
		MongoDatabaseName: getEnv("TEST_DB_NAME", defaultTestDBName),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		Log:               log,
		Client:            client.NewClient(),
	}
	cfg.Client.SetMongo(log, getEnv("TEST_MONGO_URI", defaultTestMongoURI), 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	require.NoError(t, db.Drop(ctx))
	require.NoError(t, mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, log))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("warning: failed to drop test database: %v", err)
		}
		cfg.GracefulShutdown()
	})

	return cfg, repository.NewMongoCleaningRunRepository(cfg)
}

func sampleRun(source string) *model.CleaningRun {
	return &model.CleaningRun{
		Source:      source,
		RecordCount: 2,
		Columns: []model.ColumnReport{
			{Column: "Age", Field: "Age_cleaned", Valid: 1, Invalid: 1},
		},
		SkippedColumns:     []string{"DOB"},
		AgeMax:             100,
		QuantityMax:        100,
		OrderDateFixedYear: 2025,
		DurationMs:         3,
	}
}

func TestCleaningRunRepository_CreateAndFind(t *testing.T) {
	_, repo := setupStore(t)
	ctx := context.Background()

	run := sampleRun(model.SourceAPICSV)
	require.NoError(t, repo.Create(ctx, run))
	require.Len(t, run.ID, 24)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := repo.FindByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Columns, got.Columns)
	assert.Equal(t, []string{"DOB"}, got.SkippedColumns)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.FindByID(ctx, "507f1f77bcf86cd799439011")
	assert.ErrorIs(t, err, cleaningerrors.ErrNotFound)

	_, err = repo.FindByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, cleaningerrors.ErrInvalidID)
}

func TestCleaningRunRepository_FindAllNewestFirst(t *testing.T) {
	_, repo := setupStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	var ids []string
	for i := range 3 {
		run := sampleRun(model.SourceCLI)
		run.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, run))
		ids = append(ids, run.ID)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	page, err := repo.FindAll(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[1], page[0].ID)
	assert.Equal(t, ids[0], page[1].ID)
}

func TestCleaningRunRepository_SchemaRejectsUnknownSource(t *testing.T) {
	_, repo := setupStore(t)

	err := repo.Create(context.Background(), sampleRun("spreadsheet"))
	assert.Error(t, err)
}
