package clean

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tuanvm/carprep/pkg/testutil"
)

func TestRuleCleaner_Clean(t *testing.T) {
	cfg := &FilterConfig{
		RequiredColumns: []string{"price", "year", "odometer_km"},
		MinYear:         1950,
		MaxYear:         2026,
		DropDuplicates:  true,
	}
	cleaner := NewRuleCleaner(cfg, zaptest.NewLogger(t))

	table := testutil.Table(
		[]string{"price", "year", "odometer_km", "brand"},
		testutil.Listing(10000, 2020, 50000, map[string]interface{}{"brand": "toyota"}),
		testutil.Listing(10000, 2020, 50000, map[string]interface{}{"brand": "toyota"}), // duplicate
		map[string]interface{}{"price": nil, "year": 2020.0, "odometer_km": 1000.0},     // missing price
		map[string]interface{}{"price": "n/a", "year": 2020.0, "odometer_km": 1000.0},   // non-numeric
		testutil.Listing(5000, 1890, 1000, nil),                                         // year out of range
		testutil.Listing(7000, 2018, 90000, nil),
	)

	out, report, err := cleaner.Clean(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, 6, report.RowsIn)
	assert.Equal(t, 2, report.RowsOut)
	assert.Equal(t, 2, out.Len())

	assert.Equal(t, 1, report.Dropped[RuleDuplicate])
	assert.Equal(t, 1, report.Dropped[RuleMissingRequired])
	assert.Equal(t, 1, report.Dropped[RuleNonNumeric])
	assert.Equal(t, 1, report.Dropped[RuleYearOutOfRange])
}

func TestRuleCleaner_NilConfigUsesDefault(t *testing.T) {
	cleaner := NewRuleCleaner(nil, zaptest.NewLogger(t))

	table := testutil.Table(
		[]string{"price", "year", "odometer_km"},
		testutil.Listing(10000, 2020, 50000, nil),
	)

	out, report, err := cleaner.Clean(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, 1, report.RowsOut)
}

func TestRuleCleaner_InputTableUntouched(t *testing.T) {
	cleaner := NewRuleCleaner(nil, zaptest.NewLogger(t))

	table := testutil.Table(
		[]string{"price", "year", "odometer_km"},
		testutil.Listing(10000, 2020, 50000, nil),
		map[string]interface{}{"price": nil, "year": 2020.0, "odometer_km": 1000.0},
	)

	_, _, err := cleaner.Clean(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestRuleCleaner_UnmarshalableRowsAreNotDuplicates(t *testing.T) {
	cleaner := NewRuleCleaner(nil, zaptest.NewLogger(t))

	// NaN does not marshal to JSON; such rows must be exempt from
	// duplicate detection, not collapsed onto one failed fingerprint.
	table := testutil.Table(
		[]string{"price", "year", "odometer_km"},
		testutil.Listing(10000, 2020, math.NaN(), nil),
		testutil.Listing(9000, 2019, math.NaN(), nil),
	)

	out, report, err := cleaner.Clean(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, 0, report.Dropped[RuleDuplicate])
}

func TestDefaultFilterConfig(t *testing.T) {
	cfg := DefaultFilterConfig()
	assert.Equal(t, []string{"price", "year", "odometer_km"}, cfg.RequiredColumns)
	assert.True(t, cfg.DropDuplicates)
	assert.Less(t, cfg.MinYear, cfg.MaxYear)
}
