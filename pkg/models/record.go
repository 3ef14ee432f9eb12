// Package models provides the data model shared by every pipeline stage:
// the Record, a single raw or transformed listing row, and the Table, the
// ordered collection of records that flows stage to stage.
//
// The raw column set is not statically known (document-store records may
// carry arbitrary fields), so a Record stores its row as a map from column
// name to value rather than a fixed struct. Values are float64, string,
// bool, or nil for missing.
package models

import "time"

// Record represents a single row of listing data.
type Record struct {
	// Data contains the actual row payload, keyed by column name
	Data map[string]interface{} `json:"data"`
	// Metadata contains source and timing information
	Metadata RecordMetadata `json:"metadata"`
}

// RecordMetadata carries provenance for a record.
type RecordMetadata struct {
	// Source identifies where the record came from (e.g., "mongodb", "csv")
	Source string `json:"source"`
	// Timestamp is when the record was materialized
	Timestamp time.Time `json:"timestamp"`
}

// NewRecord creates a new record with the given source and data.
func NewRecord(source string, data map[string]interface{}) *Record {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Record{
		Data: data,
		Metadata: RecordMetadata{
			Source:    source,
			Timestamp: time.Now(),
		},
	}
}

// Clone returns a deep copy of the record's data under the same metadata.
// Stages that derive new columns clone first so the input table is never
// mutated after its producing stage completed.
func (r *Record) Clone() *Record {
	data := make(map[string]interface{}, len(r.Data))
	for k, v := range r.Data {
		data[k] = v
	}
	return &Record{Data: data, Metadata: r.Metadata}
}

// Get returns the value for a column and whether the column is present
// with a non-nil value.
func (r *Record) Get(column string) (interface{}, bool) {
	v, ok := r.Data[column]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
