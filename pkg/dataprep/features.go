// Package dataprep implements the deterministic transform stages between
// cleaning and export: feature engineering over the listing table and
// one-hot encoding of its categorical columns.
package dataprep

import (
	"math"
	"time"

	"github.com/tuanvm/carprep/pkg/models"
)

// Unknown is the literal substituted for missing categorical values.
const Unknown = "Unknown"

// FeatureOptions parameterizes the feature-engineering stage.
type FeatureOptions struct {
	// ReferenceYear is the year ages are computed against. Zero selects
	// the wall-clock year at run time.
	ReferenceYear int
	// CategoricalColumns are normalized to string with missing values
	// replaced by Unknown, created whole-column if absent
	CategoricalColumns []string
	// MinPrice is the exclusive lower bound of the price filter
	MinPrice float64
	// MaxOdometerKM is the exclusive upper bound of the odometer filter
	MaxOdometerKM float64
}

// DefaultFeatureOptions returns the standard listing feature set.
func DefaultFeatureOptions() FeatureOptions {
	return FeatureOptions{
		CategoricalColumns: []string{"fuel", "transmission", "brand", "model", "city"},
		MinPrice:           0,
		MaxOdometerKM:      1_000_000,
	}
}

// Engineer derives the model features and applies the sanity filters, in
// this order:
//
//  1. age = referenceYear - year, clamped at 0 for future model years
//  2. km_per_year = odometer_km / (age + 1); the +1 makes age-0 rows
//     report their full odometer reading rather than dividing by zero
//  3. price_log = ln(1 + price), computed before the price filter; rows
//     with price <= -1 produce NaN here and are removed by step 5
//  4. categorical columns normalized to string, missing -> Unknown
//  5. keep rows with price > MinPrice
//  6. keep rows with odometer_km < MaxOdometerKM
//
// Derivation runs before filtering on purpose: the filters remove bad
// price/odometer rows, not bad-derived-feature rows. The input table is
// left untouched; a new table is returned.
func Engineer(table *models.Table, opts FeatureOptions) *models.Table {
	refYear := opts.ReferenceYear
	if refYear == 0 {
		refYear = time.Now().Year()
	}

	out := models.NewTable()
	columns := table.Columns()
	columns = appendMissing(columns, "age", "km_per_year", "price_log")
	columns = appendMissing(columns, opts.CategoricalColumns...)
	out.SetColumns(columns)

	for _, row := range table.Rows() {
		r := row.Clone()

		if year, ok := models.ToFloat(r.Data["year"]); ok {
			age := refYear - int(year)
			if age < 0 {
				age = 0 // future model year, repaired not rejected
			}
			r.Data["age"] = age

			if odo, ok := models.ToFloat(r.Data["odometer_km"]); ok {
				r.Data["km_per_year"] = odo / float64(age+1)
			}
		}

		if price, ok := models.ToFloat(r.Data["price"]); ok {
			r.Data["price_log"] = math.Log1p(price)
		}

		for _, col := range opts.CategoricalColumns {
			if v, ok := r.Get(col); ok && models.ValueToString(v) != "" {
				r.Data[col] = models.ValueToString(v)
			} else {
				r.Data[col] = Unknown
			}
		}

		out.Append(r)
	}

	out = out.Filter(func(r *models.Record) bool {
		price, ok := models.ToFloat(r.Data["price"])
		return ok && price > opts.MinPrice
	})

	out = out.Filter(func(r *models.Record) bool {
		odo, ok := models.ToFloat(r.Data["odometer_km"])
		return ok && odo < opts.MaxOdometerKM
	})

	return out
}

func appendMissing(columns []string, extra ...string) []string {
	have := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		have[c] = struct{}{}
	}
	for _, c := range extra {
		if _, ok := have[c]; !ok {
			columns = append(columns, c)
			have[c] = struct{}{}
		}
	}
	return columns
}
