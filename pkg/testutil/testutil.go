// Package testutil provides table builders for tests.
package testutil

import (
	"github.com/tuanvm/carprep/pkg/models"
)

// Table builds a table from row maps in order, registering columns in the
// order given so test assertions on headers are deterministic.
func Table(columns []string, rows ...map[string]interface{}) *models.Table {
	table := models.NewTable()
	table.SetColumns(columns)
	for _, row := range rows {
		table.Append(models.NewRecord("test", row))
	}
	return table
}

// Listing builds a minimal listing row. Extra columns can be layered on
// with the extra map; a nil extra adds nothing.
func Listing(price, year, odometer float64, extra map[string]interface{}) map[string]interface{} {
	row := map[string]interface{}{
		"price":       price,
		"year":        year,
		"odometer_km": odometer,
	}
	for k, v := range extra {
		row[k] = v
	}
	return row
}
