package model

// Record is one table row keyed by column name. Values are whatever the
// source produced: strings from CSV, numbers or nulls from JSON. Derived
// columns hold the cleaned value or nil when the raw value was invalid.
type Record map[string]any

// Clone returns a shallow copy so derived fields never leak into the caller's
// raw record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

type CleanRecordsRequest struct {
	Records []Record `json:"records" validate:"required,min=1,dive,required"`
}

type CleanRecordsResponse struct {
	RunID   string      `json:"run_id"`
	Records []Record    `json:"records"`
	Summary CleaningRun `json:"summary"`
}
