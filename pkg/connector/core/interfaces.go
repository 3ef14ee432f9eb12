// Package core defines the connector and cleaner contracts the pipeline
// is built on. Stages communicate through whole tables, not streams: the
// pipeline is a single-pass batch job with one in-flight table whose
// ownership transfers stage to stage.
package core

import (
	"context"

	"github.com/tuanvm/carprep/pkg/models"
)

// Source loads the raw record table. Read blocks until the full table is
// materialized; there is no incremental or streaming path.
type Source interface {
	// Name identifies the source for logging
	Name() string
	// Read materializes all records into a table
	Read(ctx context.Context) (*models.Table, error)
	// Close releases any held connections
	Close(ctx context.Context) error
}

// Destination persists the final table.
type Destination interface {
	// Name identifies the destination for logging
	Name() string
	// Write persists the whole table
	Write(ctx context.Context, table *models.Table) error
	// Close releases any held resources
	Close(ctx context.Context) error
}

// CleanReport summarizes what the cleaning stage removed. The pipeline
// only logs it; nothing branches on its contents.
type CleanReport struct {
	// RowsIn is the row count before cleaning
	RowsIn int `json:"rows_in"`
	// RowsOut is the row count after cleaning
	RowsOut int `json:"rows_out"`
	// Dropped maps rule name to the number of rows it removed
	Dropped map[string]int `json:"dropped"`
}

// Cleaner removes or repairs invalid rows and reports what it did.
// Implementations must return a new table and leave the input untouched.
type Cleaner interface {
	// Name identifies the cleaner for logging
	Name() string
	// Clean filters the table and returns the survivors plus a report
	Clean(ctx context.Context, table *models.Table) (*models.Table, *CleanReport, error)
}
