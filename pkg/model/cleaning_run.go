package model

import "time"

const (
	SourceAPIRecords = "api_records"
	SourceAPICSV     = "api_csv"
	SourceCLI        = "cli"
	SourceStream     = "stream"
)

// ColumnReport counts the outcome of one cleaning rule over a table.
type ColumnReport struct {
	Column  string `bson:"column" json:"column" validate:"required"`
	Field   string `bson:"field" json:"field" validate:"required"`
	Valid   int    `bson:"valid" json:"valid" validate:"min=0"`
	Invalid int    `bson:"invalid" json:"invalid" validate:"min=0"`
}

type CleaningRun struct {
	ID                 string         `bson:"_id,omitempty" json:"id,omitempty" validate:"omitempty,mongodb"`
	Source             string         `bson:"source" json:"source" validate:"required,oneof=api_records api_csv cli stream"`
	RecordCount        int            `bson:"record_count" json:"record_count" validate:"min=0"`
	Columns            []ColumnReport `bson:"columns" json:"columns" validate:"dive"`
	SkippedColumns     []string       `bson:"skipped_columns" json:"skipped_columns"`
	OverwrittenFields  []string       `bson:"overwritten_fields,omitempty" json:"overwritten_fields,omitempty"`
	AgeMin             int            `bson:"age_min" json:"age_min"`
	AgeMax             int            `bson:"age_max" json:"age_max" validate:"gtefield=AgeMin"`
	QuantityMin        int            `bson:"quantity_min" json:"quantity_min"`
	QuantityMax        int            `bson:"quantity_max" json:"quantity_max" validate:"gtefield=QuantityMin"`
	OrderDateFixedYear int            `bson:"order_date_fixed_year" json:"order_date_fixed_year" validate:"min=1,max=9999"`
	DurationMs         int64          `bson:"duration_ms" json:"duration_ms" validate:"min=0"`
	CreatedAt          time.Time      `bson:"created_at" json:"created_at" validate:"omitempty"`
}

// Report returns the column report for column and whether it was applied.
func (r *CleaningRun) Report(column string) (ColumnReport, bool) {
	for _, c := range r.Columns {
		if c.Column == column {
			return c, true
		}
	}
	return ColumnReport{}, false
}
