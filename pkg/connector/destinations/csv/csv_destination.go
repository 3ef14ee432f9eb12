// Package csv provides the flat-file destination connector. It writes the
// final table as a comma-delimited file - header row, no index column,
// UTF-8 with a byte-order marker so spreadsheet tools pick the encoding
// up correctly - creating the output directory if it does not exist.
package csv

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tuanvm/carprep/pkg/config"
	"github.com/tuanvm/carprep/pkg/errors"
	"github.com/tuanvm/carprep/pkg/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Destination writes tables to the configured output path.
type Destination struct {
	cfg    config.ExportConfig
	logger *zap.Logger
}

// New creates a CSV destination from the export section of the config.
func New(cfg config.ExportConfig, logger *zap.Logger) *Destination {
	return &Destination{
		cfg:    cfg,
		logger: logger.With(zap.String("connector", "csv")),
	}
}

// Name identifies the destination for logging.
func (d *Destination) Name() string {
	return "csv"
}

// Write persists the whole table, overwriting any previous output. The
// header comes from the table's ordered column list; missing cells render
// as empty strings.
func (d *Destination) Write(ctx context.Context, table *models.Table) error {
	if dir := filepath.Dir(d.cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to create output directory").
				WithDetail("dir", dir)
		}
	}

	file, err := os.OpenFile(d.cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create output file").
			WithDetail("path", d.cfg.Path)
	}
	defer file.Close() //nolint:errcheck // flushed and checked below

	if d.cfg.WriteBOM {
		if _, err := file.Write(utf8BOM); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to write BOM")
		}
	}

	writer := csv.NewWriter(file)
	if d.cfg.Delimiter != "" {
		writer.Comma = rune(d.cfg.Delimiter[0])
	}

	headers := table.Columns()
	if err := writer.Write(headers); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write header row")
	}

	row := make([]string, len(headers))
	for _, record := range table.Rows() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, header := range headers {
			row[i] = models.ValueToString(record.Data[header])
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to write row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush output file")
	}

	d.logger.Info("exported train-ready data",
		zap.String("path", d.cfg.Path),
		zap.Int("rows", table.Len()))

	return nil
}

// Close is a no-op; the file handle does not outlive Write.
func (d *Destination) Close(ctx context.Context) error {
	return nil
}
