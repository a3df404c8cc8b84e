// Package pipeline drives partner files through normalization and collects
// the unified output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"eligibility/internal/config"
	"eligibility/internal/logger"
	"eligibility/internal/models"
	"eligibility/internal/normalizer"
)

// ErrUnknownPartner is returned when a partner id has no configuration.
var ErrUnknownPartner = errors.New("unknown partner")

// OutputWriter persists the final record set.
type OutputWriter interface {
	WriteFile(path string, fields []string, records []models.Record) error
}

// Uploader ships the written output somewhere else, returning its location.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// FileResult holds the stats of one processed file.
type FileResult struct {
	Stats     *models.ProcessingStats
	PartnerID string
}

// Result is the outcome of a pipeline run.
type Result struct {
	StartedAt  time.Time
	FinishedAt time.Time
	// Stats holds, per partner, the stats of the last file processed for it.
	Stats          map[string]*models.ProcessingStats
	OutputPath     string
	UploadLocation string
	// Partners lists the partner ids present in Stats in processing order.
	Partners []string
	Files    []FileResult
	Records  []models.Record
}

// Pipeline coordinates partner file processing.
type Pipeline struct {
	cfg       *config.Config
	validator *normalizer.Validator
	writer    OutputWriter
	uploader  Uploader
	log       *logger.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithUploader uploads the output file after it has been written.
func WithUploader(u Uploader) Option {
	return func(p *Pipeline) {
		p.uploader = u
	}
}

// New creates a pipeline over cfg that hands its output to writer.
func New(cfg *config.Config, writer OutputWriter, log *logger.Logger, opts ...Option) *Pipeline {
	if log == nil {
		log = logger.Discard()
	}

	p := &Pipeline{
		cfg:       cfg,
		validator: normalizer.NewValidator(log),
		writer:    writer,
		log:       log,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run processes every configured partner's files found in inputDir and
// writes the combined records to outputPath.
//
// A file that cannot be read stops the run. Records gathered from the files
// processed before it are still written, and the read error is returned.
func (p *Pipeline) Run(ctx context.Context, inputDir, outputPath string, skipInvalid bool) (*Result, error) {
	p.log.Info("starting eligibility pipeline", "partners", len(p.cfg.Partners), "input", inputDir)

	res := &Result{
		StartedAt:  time.Now(),
		Stats:      make(map[string]*models.ProcessingStats),
		OutputPath: outputPath,
	}

	runErr := p.processAll(inputDir, skipInvalid, res)

	p.log.Info("writing output", "records", len(res.Records), "path", outputPath)

	if err := p.writer.WriteFile(outputPath, models.FieldOrder, res.Records); err != nil {
		return res, errors.Join(runErr, err)
	}

	if runErr != nil {
		res.FinishedAt = time.Now()

		return res, runErr
	}

	if p.uploader != nil {
		location, err := p.uploader.Upload(ctx, outputPath)
		if err != nil {
			return res, err
		}

		res.UploadLocation = location
		p.log.Info("uploaded output", "location", location)
	}

	res.FinishedAt = time.Now()
	p.logSummary(res)

	return res, nil
}

func (p *Pipeline) processAll(inputDir string, skipInvalid bool, res *Result) error {
	for _, partner := range p.cfg.Partners {
		files, err := matchFiles(inputDir, partner.Config.FilePattern)
		if err != nil {
			return err
		}

		if len(files) == 0 {
			p.log.Warn("no files found for partner", "partner", partner.ID, "pattern", partner.Config.FilePattern)

			continue
		}

		for _, file := range files {
			records, stats, err := p.ProcessPartner(partner.ID, file, skipInvalid)
			if err != nil {
				p.log.Error("partner file failed", "partner", partner.ID, "file", file, "error", err)

				return fmt.Errorf("partner %s: %w", partner.ID, err)
			}

			res.Records = append(res.Records, records...)
			res.Files = append(res.Files, FileResult{PartnerID: partner.ID, Stats: stats})

			if _, seen := res.Stats[partner.ID]; !seen {
				res.Partners = append(res.Partners, partner.ID)
			}

			res.Stats[partner.ID] = stats
		}
	}

	return nil
}

// matchFiles returns the regular files in dir matching pattern, in lexical order.
func matchFiles(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	files := make([]string, 0, len(matches))

	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		files = append(files, m)
	}

	return files, nil
}

func (p *Pipeline) logSummary(res *Result) {
	p.log.Info("pipeline complete",
		"records_written", len(res.Records),
		"duration", res.FinishedAt.Sub(res.StartedAt).String(),
	)

	for _, id := range res.Partners {
		stats := res.Stats[id]
		p.log.Info("partner summary",
			"partner", id,
			"successful", stats.SuccessfulRows,
			"failed", stats.FailedRows,
			"success_rate", fmt.Sprintf("%.1f%%", stats.SuccessRate()),
		)
	}
}
