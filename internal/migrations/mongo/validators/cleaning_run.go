package validators

import "go.mongodb.org/mongo-driver/bson"

var columnReport = bson.M{
	"bsonType": "object",
	"required": []string{"column", "field", "valid", "invalid"},
	"properties": bson.M{
		"column":  bson.M{"bsonType": "string", "minLength": 1},
		"field":   bson.M{"bsonType": "string", "minLength": 1},
		"valid":   bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
		"invalid": bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
	},
}

var CleaningRunValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"source",
			"record_count",
			"columns",
			"order_date_fixed_year",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"source": bson.M{
				"enum": []string{"api_records", "api_csv", "cli", "stream"},
			},

			"record_count": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"columns": bson.M{
				"bsonType": []string{"array", "null"},
				"items":    columnReport,
			},

			"skipped_columns": bson.M{
				"bsonType": []string{"array", "null"},
				"items":    bson.M{"bsonType": "string"},
			},

			"order_date_fixed_year": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  9999,
			},

			"duration_ms": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
