// Package carprep turns raw vehicle-listing records into a model-ready
// tabular dataset.
//
// The pipeline is a single-pass batch job with five fixed stages:
//
//  1. Load: materialize raw records from a MongoDB collection or a
//     delimited flat file (pkg/connector/sources).
//  2. Clean: remove rows that cannot be used downstream and report what
//     was removed (pkg/clean, behind the core.Cleaner contract).
//  3. Feature-Engineer: derive age, km_per_year and price_log, normalize
//     the categorical columns, and apply the price/odometer sanity
//     filters (pkg/dataprep).
//  4. Encode: replace the categorical columns with one-hot indicator
//     columns (pkg/dataprep).
//  5. Export: write the result as a UTF-8 CSV with a byte-order marker
//     and a header row (pkg/connector/destinations/csv).
//
// Stages communicate through whole tables (pkg/models), not streams: one
// table is in flight at a time and each stage returns a new one, so the
// first error aborts the run before any output is written.
//
// # Quick start
//
//	import (
//	    "context"
//
//	    "github.com/tuanvm/carprep/pkg/clean"
//	    "github.com/tuanvm/carprep/pkg/config"
//	    csvdest "github.com/tuanvm/carprep/pkg/connector/destinations/csv"
//	    "github.com/tuanvm/carprep/pkg/connector/sources/mongodb"
//	    "github.com/tuanvm/carprep/pkg/logger"
//	    "github.com/tuanvm/carprep/pkg/pipeline"
//	)
//
//	cfg := config.NewConfig()
//	if err := cfg.Validate(); err != nil {
//	    // handle error
//	}
//
//	log := logger.Get()
//	p := pipeline.New(
//	    mongodb.New(cfg.Source, log),
//	    clean.NewRuleCleaner(clean.DefaultFilterConfig(), log),
//	    csvdest.New(cfg.Export, log),
//	    cfg,
//	    log,
//	)
//	if err := p.Run(context.Background()); err != nil {
//	    // handle error
//	}
//
// The carprep binary under cmd/carprep wires the same pieces behind a
// cobra CLI.
package carprep
