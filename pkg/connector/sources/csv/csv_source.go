// Package csv provides the flat-file source connector. It reads a
// delimited file with a header row and materializes it as the raw record
// table, parsing numeric cells to float64 and empty cells to missing.
package csv

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tuanvm/carprep/pkg/config"
	"github.com/tuanvm/carprep/pkg/errors"
	"github.com/tuanvm/carprep/pkg/models"
)

// Source reads the configured input file.
type Source struct {
	cfg    config.SourceConfig
	logger *zap.Logger
}

// New creates a CSV source from the source section of the config.
func New(cfg config.SourceConfig, logger *zap.Logger) *Source {
	return &Source{
		cfg:    cfg,
		logger: logger.With(zap.String("connector", "csv")),
	}
}

// Name identifies the source for logging.
func (s *Source) Name() string {
	return "csv"
}

// Read materializes the input file as a table. A missing file is reported
// as a not-found error before any read is attempted.
func (s *Source) Read(ctx context.Context) (*models.Table, error) {
	if _, err := os.Stat(s.cfg.InputPath); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrorTypeNotFound, "input file not found").
				WithDetail("path", s.cfg.InputPath)
		}
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to stat input file").
			WithDetail("path", s.cfg.InputPath)
	}

	file, err := os.Open(s.cfg.InputPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open input file").
			WithDetail("path", s.cfg.InputPath)
	}
	defer file.Close() //nolint:errcheck // read-only handle

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, repaired below

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to parse input file").
			WithDetail("path", s.cfg.InputPath)
	}
	if len(rows) == 0 {
		return models.NewTable(), nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimPrefix(h, "\ufeff") // strip a leading BOM
	}

	table := models.NewTable()
	table.SetColumns(headers)

	for _, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data := make(map[string]interface{}, len(headers))
		for i, header := range headers {
			if i >= len(row) {
				data[header] = nil
				continue
			}
			data[header] = parseCell(row[i])
		}
		table.Append(models.NewRecord("csv", data))
	}

	s.logger.Info("loaded rows from file",
		zap.Int("rows", table.Len()),
		zap.String("path", s.cfg.InputPath))

	return table, nil
}

// Close is a no-op; the file handle does not outlive Read.
func (s *Source) Close(ctx context.Context) error {
	return nil
}

// parseCell maps an empty cell to missing and a numeric cell to float64,
// matching how document-store records carry their values.
func parseCell(cell string) interface{} {
	if cell == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}
