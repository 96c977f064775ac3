package mongo

import (
	"testing"

	"datacleaner/internal/cleaning/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections(t *testing.T) {
	defs := Collections()
	def, ok := defs[repository.CollectionName]
	require.True(t, ok)

	assert.NotEmpty(t, def.Indexes)
	schema, ok := def.Validator["$jsonSchema"].(bson.M)
	require.True(t, ok)
	assert.Contains(t, schema["required"], "created_at")
}
