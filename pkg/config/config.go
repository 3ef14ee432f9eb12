// Package config provides the unified configuration system for carprep.
// It defines a single Config structure that the pipeline and every
// connector use, so configuration is passed explicitly as a parameter
// object rather than read from package-level state.
//
// The configuration is organized into logical sections:
//   - Source: where raw listings come from (MongoDB or a flat file)
//   - Features: feature-engineering columns and sanity bounds
//   - Encoding: which categorical columns get one-hot encoded
//   - Export: output path and delimited-file options
//   - Logging: level and encoding for the structured logger
//
// Example usage:
//
//	cfg := config.NewConfig()
//	cfg.Source.FromMongo = false
//	cfg.Source.InputPath = "data/extracted_cars.csv"
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
	"time"
)

// Config is the single configuration structure for a pipeline run.
type Config struct {
	// Source selects and parameterizes the raw-data loader
	Source SourceConfig `yaml:"source" json:"source"`

	// Features controls the feature-engineering stage
	Features FeatureConfig `yaml:"features" json:"features"`

	// Encoding controls the categorical-encoding stage
	Encoding EncodingConfig `yaml:"encoding" json:"encoding"`

	// Export controls the flat-file exporter
	Export ExportConfig `yaml:"export" json:"export"`

	// Logging configures the structured logger
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SourceConfig selects the raw-record source.
type SourceConfig struct {
	// FromMongo selects the document-store path; false selects the flat file
	FromMongo bool `yaml:"from_mongo" json:"from_mongo"`
	// MongoURI is the document-store connection address
	MongoURI string `yaml:"mongo_uri" json:"mongo_uri"`
	// Database is the document-store database name
	Database string `yaml:"database" json:"database"`
	// Collection is the document-store collection name
	Collection string `yaml:"collection" json:"collection"`
	// InputPath is the flat-file input path for the file source
	InputPath string `yaml:"input_path" json:"input_path"`
	// ConnectTimeout bounds the initial store connection
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout"`
}

// FeatureConfig controls the deterministic feature-engineering transforms.
type FeatureConfig struct {
	// CategoricalColumns are guaranteed present and string-typed after
	// feature engineering, with missing values replaced by "Unknown"
	CategoricalColumns []string `yaml:"categorical_columns" json:"categorical_columns"`
	// MinPrice is the exclusive lower bound kept by the price filter
	MinPrice float64 `yaml:"min_price" json:"min_price"`
	// MaxOdometerKM is the exclusive upper bound kept by the odometer filter
	MaxOdometerKM float64 `yaml:"max_odometer_km" json:"max_odometer_km"`
	// ReferenceYear overrides the wall-clock year for age derivation.
	// Zero means use the current year. Tests set this for determinism.
	ReferenceYear int `yaml:"reference_year" json:"reference_year"`
}

// EncodingConfig controls one-hot encoding.
type EncodingConfig struct {
	// Columns are the categorical columns replaced by indicator columns
	Columns []string `yaml:"columns" json:"columns"`
}

// ExportConfig controls the delimited-file exporter.
type ExportConfig struct {
	// Path is the output file path; its directory is created if absent
	Path string `yaml:"path" json:"path"`
	// Delimiter is the field separator, default comma
	Delimiter string `yaml:"delimiter" json:"delimiter"`
	// WriteBOM prepends a UTF-8 byte-order marker for spreadsheet
	// compatibility
	WriteBOM bool `yaml:"write_bom" json:"write_bom"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level sets logging verbosity (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`
	// Encoding selects console or json output
	Encoding string `yaml:"encoding" json:"encoding"`
	// Development enables colored, stacktraced output
	Development bool `yaml:"development" json:"development"`
}

// NewConfig creates a Config with the pipeline's default values: the
// web_data.cars_raw collection on a local MongoDB, the conventional
// data/ paths, the five normalized categorical columns, and the
// {fuel, transmission, brand} encoding set.
func NewConfig() *Config {
	return &Config{
		Source: SourceConfig{
			FromMongo:      true,
			MongoURI:       "mongodb://localhost:27017/",
			Database:       "web_data",
			Collection:     "cars_raw",
			InputPath:      "data/extracted_cars.csv",
			ConnectTimeout: 10 * time.Second,
		},
		Features: FeatureConfig{
			CategoricalColumns: []string{"fuel", "transmission", "brand", "model", "city"},
			MinPrice:           0,
			MaxOdometerKM:      1_000_000,
			ReferenceYear:      0,
		},
		Encoding: EncodingConfig{
			Columns: []string{"fuel", "transmission", "brand"},
		},
		Export: ExportConfig{
			Path:      "data/train_ready.csv",
			Delimiter: ",",
			WriteBOM:  true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Validate validates the configuration for correctness. Connectors and the
// pipeline call this before running to catch errors early.
func (c *Config) Validate() error {
	if c.Source.FromMongo {
		if c.Source.MongoURI == "" {
			return fmt.Errorf("source.mongo_uri is required when from_mongo is set")
		}
		if c.Source.Database == "" {
			return fmt.Errorf("source.database is required when from_mongo is set")
		}
		if c.Source.Collection == "" {
			return fmt.Errorf("source.collection is required when from_mongo is set")
		}
	} else if c.Source.InputPath == "" {
		return fmt.Errorf("source.input_path is required for the file source")
	}
	if c.Features.MaxOdometerKM <= 0 {
		return fmt.Errorf("features.max_odometer_km must be positive")
	}
	if c.Export.Path == "" {
		return fmt.Errorf("export.path is required")
	}
	if len(c.Export.Delimiter) > 1 {
		return fmt.Errorf("export.delimiter must be a single character")
	}
	return nil
}
