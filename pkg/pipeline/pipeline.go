// Package pipeline provides the five-stage preprocessing orchestrator:
// Load -> Clean -> Feature-Engineer -> Encode -> Export, run strictly in
// sequence with no branching and no retries. The single in-flight table
// transfers ownership stage to stage; the first error aborts the run, so
// no partial output is ever written.
package pipeline

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/tuanvm/carprep/pkg/config"
	"github.com/tuanvm/carprep/pkg/connector/core"
	"github.com/tuanvm/carprep/pkg/dataprep"
	"github.com/tuanvm/carprep/pkg/errors"
	"github.com/tuanvm/carprep/pkg/metrics"
	"github.com/tuanvm/carprep/pkg/models"
)

// Pipeline wires a source, a cleaner, and a destination around the
// dataprep transforms.
type Pipeline struct {
	source      core.Source
	cleaner     core.Cleaner
	destination core.Destination
	cfg         *config.Config
	logger      *zap.Logger
}

// New creates a pipeline. The configuration must already be validated.
func New(source core.Source, cleaner core.Cleaner, destination core.Destination, cfg *config.Config, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		source:      source,
		cleaner:     cleaner,
		destination: destination,
		cfg:         cfg,
		logger:      logger,
	}
}

// Run executes the fixed stage sequence and blocks until the output file
// is written or a stage fails.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("starting preprocessing pipeline",
		zap.String("source", p.source.Name()),
		zap.String("destination", p.destination.Name()))

	raw, err := p.load(ctx)
	if err != nil {
		return err
	}

	cleaned, err := p.clean(ctx, raw)
	if err != nil {
		return err
	}

	engineered := p.engineer(cleaned)

	encoded, err := p.encode(engineered)
	if err != nil {
		return err
	}

	if err := p.export(ctx, encoded); err != nil {
		return err
	}

	p.logger.Info("preprocessing complete", zap.Int("rows", encoded.Len()))
	return nil
}

func (p *Pipeline) load(ctx context.Context) (*models.Table, error) {
	timer := metrics.NewTimer("load")
	table, err := p.source.Read(ctx)
	timer.Stop()
	if err != nil {
		return nil, err
	}

	metrics.RecordsLoaded.WithLabelValues(p.source.Name()).Add(float64(table.Len()))
	return table, nil
}

func (p *Pipeline) clean(ctx context.Context, table *models.Table) (*models.Table, error) {
	timer := metrics.NewTimer("clean")
	cleaned, report, err := p.cleaner.Clean(ctx, table)
	timer.Stop()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "cleaning stage failed")
	}

	metrics.RecordsDropped.WithLabelValues("clean").Add(float64(report.RowsIn - report.RowsOut))

	p.logger.Info("cleaning report",
		zap.String("cleaner", p.cleaner.Name()),
		zap.String("report", reportString(report)))

	return cleaned, nil
}

func (p *Pipeline) engineer(table *models.Table) *models.Table {
	timer := metrics.NewTimer("features")
	engineered := dataprep.Engineer(table, dataprep.FeatureOptions{
		ReferenceYear:      p.cfg.Features.ReferenceYear,
		CategoricalColumns: p.cfg.Features.CategoricalColumns,
		MinPrice:           p.cfg.Features.MinPrice,
		MaxOdometerKM:      p.cfg.Features.MaxOdometerKM,
	})
	timer.Stop()

	metrics.RecordsDropped.WithLabelValues("features").Add(float64(table.Len() - engineered.Len()))

	p.logger.Info("feature engineering complete",
		zap.Int("rows_in", table.Len()),
		zap.Int("rows_out", engineered.Len()))

	return engineered
}

func (p *Pipeline) encode(table *models.Table) (*models.Table, error) {
	timer := metrics.NewTimer("encode")
	encoder := dataprep.NewOneHotEncoder(p.cfg.Encoding.Columns)
	encoder.Fit(table)
	encoded, err := encoder.Transform(table)
	timer.Stop()
	if err != nil {
		return nil, err
	}

	p.logger.Info("one-hot encoded categorical features",
		zap.Strings("columns", p.cfg.Encoding.Columns),
		zap.Int("indicator_columns", len(encoder.FeatureNames())))

	return encoded, nil
}

func (p *Pipeline) export(ctx context.Context, table *models.Table) error {
	timer := metrics.NewTimer("export")
	err := p.destination.Write(ctx, table)
	timer.Stop()
	if err != nil {
		return err
	}

	metrics.RecordsExported.Add(float64(table.Len()))
	return nil
}

// reportString renders the cleaning report for the status line. The
// report is informational only; nothing branches on it.
func reportString(report *core.CleanReport) string {
	data, err := json.Marshal(report)
	if err != nil {
		return ""
	}
	return string(data)
}
