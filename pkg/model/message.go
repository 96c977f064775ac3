package model

import "time"

// RecordMessage is the payload consumed from the raw records topic.
type RecordMessage struct {
	ID     string `json:"id" validate:"required"`
	Fields Record `json:"fields" validate:"required"`
}

// CleanedRecordMessage is published to the cleaned records topic, keyed by ID.
type CleanedRecordMessage struct {
	ID             string    `json:"id"`
	Fields         Record    `json:"fields"`
	InvalidFields  []string  `json:"invalid_fields,omitempty"`
	SkippedColumns []string  `json:"skipped_columns,omitempty"`
	CleanedAt      time.Time `json:"cleaned_at"`
}
