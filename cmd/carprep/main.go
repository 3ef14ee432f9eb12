package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tuanvm/carprep/pkg/clean"
	"github.com/tuanvm/carprep/pkg/config"
	"github.com/tuanvm/carprep/pkg/connector/core"
	csvdest "github.com/tuanvm/carprep/pkg/connector/destinations/csv"
	csvsource "github.com/tuanvm/carprep/pkg/connector/sources/csv"
	"github.com/tuanvm/carprep/pkg/connector/sources/mongodb"
	"github.com/tuanvm/carprep/pkg/logger"
	"github.com/tuanvm/carprep/pkg/pipeline"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "carprep",
		Short: "carprep - vehicle-listing preprocessing pipeline",
		Long: `carprep turns raw vehicle-listing records into a model-ready tabular
dataset: it loads raw records from MongoDB or a flat file, cleans them,
derives engineered features, one-hot encodes the categorical columns, and
writes a train-ready CSV.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("carprep v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	var (
		configFile string
		fromMongo  bool
		mongoURI   string
		inputPath  string
		outputPath string
		logLevel   string
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the preprocessing pipeline",
		Long: `Run the five-stage preprocessing pipeline: load, clean, feature
engineering, categorical encoding, export.

Example:
  carprep run --from-mongo --mongo-uri mongodb://localhost:27017/
  carprep run --from-mongo=false --input data/extracted_cars.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig()

			if configFile != "" {
				if err := config.Load(configFile, cfg); err != nil {
					return err
				}
			}

			// Flags override file and defaults
			if cmd.Flags().Changed("from-mongo") {
				cfg.Source.FromMongo = fromMongo
			}
			if cmd.Flags().Changed("mongo-uri") {
				cfg.Source.MongoURI = mongoURI
			}
			if uri := os.Getenv("MONGO_URI"); uri != "" && !cmd.Flags().Changed("mongo-uri") {
				cfg.Source.MongoURI = uri
			}
			if cmd.Flags().Changed("input") {
				cfg.Source.InputPath = inputPath
			}
			if cmd.Flags().Changed("output") {
				cfg.Export.Path = outputPath
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runPipeline(cfg)
		},
	}

	runCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML configuration file (optional)")
	runCmd.Flags().BoolVar(&fromMongo, "from-mongo", true, "Load raw records from MongoDB instead of the input file")
	runCmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017/", "MongoDB connection address")
	runCmd.Flags().StringVarP(&inputPath, "input", "i", "data/extracted_cars.csv", "Input CSV path for the file source")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "data/train_ready.csv", "Output CSV path")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPipeline(cfg *config.Config) error {
	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Encoding:    cfg.Logging.Encoding,
	}); err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	log := logger.Get()

	var source core.Source
	if cfg.Source.FromMongo {
		source = mongodb.New(cfg.Source, log)
	} else {
		source = csvsource.New(cfg.Source, log)
	}

	cleaner := clean.NewRuleCleaner(clean.DefaultFilterConfig(), log)
	destination := csvdest.New(cfg.Export, log)

	ctx := context.Background()
	defer source.Close(ctx)      //nolint:errcheck // best-effort cleanup
	defer destination.Close(ctx) //nolint:errcheck // best-effort cleanup

	p := pipeline.New(source, cleaner, destination, cfg, log)
	if err := p.Run(ctx); err != nil {
		log.Error("pipeline failed", zap.Error(err))
		return err
	}

	return nil
}
