// Package main provides the eligibility pipeline command that normalizes
// partner files into one unified dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"eligibility/internal/config"
	"eligibility/internal/logger"
	"eligibility/internal/output"
	"eligibility/internal/pipeline"
	"eligibility/internal/report"

	"github.com/google/uuid"
)

func main() {
	var (
		configPath     string
		inputDir       string
		outputPath     string
		verbose        bool
		includeInvalid bool
	)

	flag.StringVar(&configPath, "config", "", "Path to the partner YAML configuration")
	flag.StringVar(&configPath, "c", "", "Shorthand for -config")
	flag.StringVar(&inputDir, "input", "", "Directory containing partner input files")
	flag.StringVar(&inputDir, "i", "", "Shorthand for -input")
	flag.StringVar(&outputPath, "output", "", "Path for the unified output file")
	flag.StringVar(&outputPath, "o", "", "Shorthand for -output")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&verbose, "v", false, "Shorthand for -verbose")
	flag.BoolVar(&includeInvalid, "include-invalid", false, "Include rows that fail validation in the output")

	format := flag.String("format", "", "Output format override (csv, jsonl, avro)")
	reportPath := flag.String("report", "", "Path for the JSON run report (overrides output.report_path)")

	flag.Parse()

	if configPath == "" || inputDir == "" || outputPath == "" {
		fmt.Println("Usage: pipeline -config <partners.yaml> -input <dir> -output <file> [-include-invalid] [-verbose]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.NewLogger("info").Error("failed to load configuration", "path", configPath, "error", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)
	if verbose {
		log.SetLevel("debug")
	}

	log.Debug("configuration loaded", "config", cfg.String())

	if *format != "" {
		cfg.Output.Format = *format
	}

	if *reportPath != "" {
		cfg.Output.ReportPath = *reportPath
	}

	writer, err := output.NewFileWriter(cfg.Output.Format)
	if err != nil {
		log.Error("invalid output format", "format", cfg.Output.Format, "error", err)
		os.Exit(1)
	}

	var opts []pipeline.Option
	if cfg.Output.S3.Enabled {
		opts = append(opts, pipeline.WithUploader(output.NewS3Uploader(cfg.Output.S3)))
	}

	runID := uuid.NewString()
	log = log.With("run_id", runID)

	res, runErr := pipeline.New(cfg, writer, log, opts...).Run(context.Background(), inputDir, outputPath, !includeInvalid)

	if res != nil {
		rep := report.New(runID, res)

		if cfg.Output.ReportPath != "" {
			if err := report.WriteJSON(cfg.Output.ReportPath, rep); err != nil {
				log.Error("failed to write run report", "path", cfg.Output.ReportPath, "error", err)
			} else {
				log.Info("run report written", "path", cfg.Output.ReportPath)
			}
		}

		for _, line := range report.SummaryTable(rep) {
			fmt.Println(line)
		}
	}

	if runErr != nil {
		log.Error("pipeline failed", "error", runErr)
		os.Exit(1)
	}
}
