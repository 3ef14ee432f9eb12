package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap/zaptest"

	"github.com/tuanvm/carprep/pkg/config"
	"github.com/tuanvm/carprep/pkg/errors"
)

func TestSource_Name(t *testing.T) {
	src := New(config.SourceConfig{}, zaptest.NewLogger(t))
	assert.Equal(t, "mongodb", src.Name())
}

func TestSource_CloseWithoutConnect(t *testing.T) {
	src := New(config.SourceConfig{}, zaptest.NewLogger(t))
	assert.NoError(t, src.Close(context.Background()))
}

func TestTableFromDocs_StableHeader(t *testing.T) {
	docs := []bson.D{
		{
			{Key: "price", Value: 10000.0},
			{Key: "year", Value: int32(2020)},
			{Key: "odometer_km", Value: 50000.0},
			{Key: "fuel", Value: "petrol"},
			{Key: "brand", Value: "toyota"},
			{Key: "model", Value: "corolla"},
			{Key: "city", Value: "hanoi"},
		},
	}

	want := []string{"price", "year", "odometer_km", "fuel", "brand", "model", "city"}

	// The header must follow document key order on every build, not map
	// iteration order.
	for i := 0; i < 50; i++ {
		table := tableFromDocs(docs)
		require.Equal(t, want, table.Columns(), "build %d", i)
	}
}

func TestTableFromDocs_ColumnUnion(t *testing.T) {
	docs := []bson.D{
		{{Key: "price", Value: 10000.0}, {Key: "year", Value: int32(2020)}},
		{{Key: "price", Value: 9000.0}, {Key: "fuel", Value: "diesel"}},
	}

	table := tableFromDocs(docs)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"price", "year", "fuel"}, table.Columns())
	assert.Equal(t, "diesel", table.Row(1).Data["fuel"])
	assert.Equal(t, "mongodb", table.Row(0).Metadata.Source)
}

func TestSource_UnreachableStore(t *testing.T) {
	// Reserved port with nothing listening; the short timeout keeps the
	// failure fast.
	src := New(config.SourceConfig{
		MongoURI:       "mongodb://127.0.0.1:1/",
		Database:       "web_data",
		Collection:     "cars_raw",
		ConnectTimeout: 100 * time.Millisecond,
	}, zaptest.NewLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := src.Read(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConnection))
}
