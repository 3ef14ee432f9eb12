package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tuanvm/carprep/pkg/config"
	"github.com/tuanvm/carprep/pkg/testutil"
)

func TestDestination_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "train_ready.csv")

	dest := New(config.ExportConfig{
		Path:      path,
		Delimiter: ",",
		WriteBOM:  true,
	}, zaptest.NewLogger(t))

	table := testutil.Table(
		[]string{"price", "age", "brand"},
		map[string]interface{}{"price": 10000.0, "age": 4, "brand": "toyota"},
		map[string]interface{}{"price": 8000.0, "age": 6, "brand": nil},
	)

	require.NoError(t, dest.Write(context.Background(), table))

	// The output directory was created and the file starts with a BOM
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})))
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	// Header row, no index column, missing cell rendered empty
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"price", "age", "brand"}, rows[0])
	assert.Equal(t, []string{"10000", "4", "toyota"}, rows[1])
	assert.Equal(t, []string{"8000", "6", ""}, rows[2])
}

func TestDestination_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train_ready.csv")
	dest := New(config.ExportConfig{Path: path, WriteBOM: false}, zaptest.NewLogger(t))

	first := testutil.Table([]string{"a"},
		map[string]interface{}{"a": 1.0},
		map[string]interface{}{"a": 2.0},
	)
	second := testutil.Table([]string{"a"},
		map[string]interface{}{"a": 3.0},
	)

	require.NoError(t, dest.Write(context.Background(), first))
	require.NoError(t, dest.Write(context.Background(), second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n3\n", string(raw))
}

func TestDestination_ExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	dest := New(config.ExportConfig{Path: filepath.Join(dir, "out.csv")}, zaptest.NewLogger(t))

	table := testutil.Table([]string{"a"}, map[string]interface{}{"a": 1.0})
	assert.NoError(t, dest.Write(context.Background(), table))
}
