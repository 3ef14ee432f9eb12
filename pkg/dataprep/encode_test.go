package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvm/carprep/pkg/models"
	"github.com/tuanvm/carprep/pkg/testutil"
)

func TestOneHotEncoder_ColumnArithmetic(t *testing.T) {
	table := testutil.Table(
		[]string{"price", "fuel", "transmission", "brand"},
		map[string]interface{}{"price": 1000.0, "fuel": "petrol", "transmission": "manual", "brand": "toyota"},
		map[string]interface{}{"price": 2000.0, "fuel": "diesel", "transmission": "manual", "brand": "honda"},
		map[string]interface{}{"price": 3000.0, "fuel": "petrol", "transmission": "auto", "brand": "toyota"},
	)

	enc := NewOneHotEncoder([]string{"fuel", "transmission", "brand"})
	out, err := enc.FitTransform(table)
	require.NoError(t, err)

	// 2 fuels + 2 transmissions + 2 brands distinct values
	distinct := 6
	assert.Len(t, out.Columns(), len(table.Columns())-3+distinct)
	assert.Equal(t, table.Len(), out.Len())
}

func TestOneHotEncoder_IndicatorNamingAndValues(t *testing.T) {
	table := testutil.Table(
		[]string{"price", "fuel"},
		map[string]interface{}{"price": 1000.0, "fuel": "petrol"},
		map[string]interface{}{"price": 2000.0, "fuel": "diesel"},
	)

	enc := NewOneHotEncoder([]string{"fuel"})
	out, err := enc.FitTransform(table)
	require.NoError(t, err)

	// Vocabulary is sorted, names combine column and value
	assert.Equal(t, []string{"fuel_diesel", "fuel_petrol"}, enc.FeatureNames())
	assert.Equal(t, []string{"price", "fuel_diesel", "fuel_petrol"}, out.Columns())

	assert.Equal(t, 1, out.Row(0).Data["fuel_petrol"])
	assert.Equal(t, 0, out.Row(0).Data["fuel_diesel"])
	assert.Equal(t, 1, out.Row(1).Data["fuel_diesel"])
	assert.Equal(t, 0, out.Row(1).Data["fuel_petrol"])

	// The source column is gone
	assert.False(t, out.HasColumn("fuel"))
}

func TestOneHotEncoder_UnknownCategoryAllZero(t *testing.T) {
	fitTable := testutil.Table(
		[]string{"fuel"},
		map[string]interface{}{"fuel": "petrol"},
		map[string]interface{}{"fuel": "diesel"},
	)
	other := testutil.Table(
		[]string{"fuel"},
		map[string]interface{}{"fuel": "electric"},
	)

	enc := NewOneHotEncoder([]string{"fuel"})
	enc.Fit(fitTable)

	out, err := enc.Transform(other)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())

	assert.Equal(t, 0, out.Row(0).Data["fuel_diesel"])
	assert.Equal(t, 0, out.Row(0).Data["fuel_petrol"])
}

func TestOneHotEncoder_RowAlignmentAfterFiltering(t *testing.T) {
	table := testutil.Table(
		[]string{"id", "fuel"},
		map[string]interface{}{"id": 1.0, "fuel": "petrol"},
		map[string]interface{}{"id": 2.0, "fuel": "diesel"},
		map[string]interface{}{"id": 3.0, "fuel": "petrol"},
	)

	// Simulate upstream filtering leaving non-contiguous rows
	filtered := table.Filter(func(r *models.Record) bool { return r.Data["id"] != 2.0 })

	enc := NewOneHotEncoder([]string{"fuel"})
	out, err := enc.FitTransform(filtered)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())

	assert.Equal(t, 1.0, out.Row(0).Data["id"])
	assert.Equal(t, 1, out.Row(0).Data["fuel_petrol"])
	assert.Equal(t, 3.0, out.Row(1).Data["id"])
	assert.Equal(t, 1, out.Row(1).Data["fuel_petrol"])
}

func TestOneHotEncoder_TransformBeforeFit(t *testing.T) {
	enc := NewOneHotEncoder([]string{"fuel"})
	_, err := enc.Transform(testutil.Table([]string{"fuel"}))
	assert.Error(t, err)
}

func TestOneHotEncoder_AbsentColumn(t *testing.T) {
	table := testutil.Table(
		[]string{"price"},
		map[string]interface{}{"price": 1000.0},
	)

	enc := NewOneHotEncoder([]string{"fuel"})
	out, err := enc.FitTransform(table)
	require.NoError(t, err)

	// An absent column fits an empty vocabulary and contributes nothing
	require.Equal(t, 1, out.Len())
	assert.Equal(t, []string{"price"}, out.Columns())
}
