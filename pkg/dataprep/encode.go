package dataprep

import (
	"sort"

	"github.com/tuanvm/carprep/pkg/errors"
	"github.com/tuanvm/carprep/pkg/models"
)

// OneHotEncoder replaces categorical columns with one 0/1 indicator
// column per observed category value, named "<column>_<value>".
//
// The vocabulary is fit from whatever table Fit sees and is not persisted,
// so encodings are only stable across runs whose inputs observe the same
// category sets. Values outside the fitted vocabulary encode as all
// zeros rather than failing.
type OneHotEncoder struct {
	columns []string
	vocab   map[string][]string
	fitted  bool
}

// NewOneHotEncoder creates an encoder for the given categorical columns.
func NewOneHotEncoder(columns []string) *OneHotEncoder {
	return &OneHotEncoder{
		columns: columns,
	}
}

// Fit captures the sorted set of distinct values per configured column.
// Columns absent from the table fit an empty vocabulary and contribute no
// indicator columns.
func (e *OneHotEncoder) Fit(table *models.Table) {
	e.vocab = make(map[string][]string, len(e.columns))

	for _, col := range e.columns {
		set := make(map[string]struct{})
		for _, row := range table.Rows() {
			if v, ok := row.Get(col); ok {
				set[models.ValueToString(v)] = struct{}{}
			}
		}
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		e.vocab[col] = values
	}

	e.fitted = true
}

// FeatureNames returns the indicator column names the encoder produces,
// grouped by source column in configuration order.
func (e *OneHotEncoder) FeatureNames() []string {
	var names []string
	for _, col := range e.columns {
		for _, v := range e.vocab[col] {
			names = append(names, col+"_"+v)
		}
	}
	return names
}

// Transform returns a new table with the encoded columns removed and the
// indicator columns appended. Rows are rebuilt positionally, so alignment
// between the passthrough columns and the indicators holds regardless of
// any non-contiguous numbering upstream filtering left behind.
func (e *OneHotEncoder) Transform(table *models.Table) (*models.Table, error) {
	if !e.fitted {
		return nil, errors.New(errors.ErrorTypeData, "one-hot encoder used before Fit")
	}

	encoded := make(map[string]struct{}, len(e.columns))
	for _, col := range e.columns {
		encoded[col] = struct{}{}
	}

	var passthrough []string
	for _, col := range table.Columns() {
		if _, drop := encoded[col]; !drop {
			passthrough = append(passthrough, col)
		}
	}

	out := models.NewTable()
	out.SetColumns(append(append([]string{}, passthrough...), e.FeatureNames()...))

	for _, row := range table.Rows() {
		data := make(map[string]interface{}, len(passthrough)+len(encoded))
		for _, col := range passthrough {
			data[col] = row.Data[col]
		}
		for _, col := range e.columns {
			value, present := row.Get(col)
			str := models.ValueToString(value)
			for _, v := range e.vocab[col] {
				indicator := 0
				if present && str == v {
					indicator = 1
				}
				data[col+"_"+v] = indicator
			}
		}
		out.Append(models.NewRecord(row.Metadata.Source, data))
	}

	return out, nil
}

// FitTransform fits the vocabulary on the table and transforms it in one
// step, mirroring how the pipeline uses the encoder: a fresh fit per run.
func (e *OneHotEncoder) FitTransform(table *models.Table) (*models.Table, error) {
	e.Fit(table)
	return e.Transform(table)
}
