// Package report summarizes a pipeline run as a JSON document and as an
// aligned console table.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"eligibility/internal/models"
	"eligibility/internal/pipeline"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PartnerSummary holds the stats reported for one partner.
type PartnerSummary struct {
	Failures       []models.FailureDetail `json:"failures"`
	ID             string                 `json:"id"`
	File           string                 `json:"file"`
	TotalRows      int                    `json:"totalRows"`
	SuccessfulRows int                    `json:"successfulRows"`
	FailedRows     int                    `json:"failedRows"`
	SuccessRate    float64                `json:"successRate"`
}

// FileSummary holds the stats of one processed file.
type FileSummary struct {
	PartnerID      string `json:"partnerId"`
	File           string `json:"file"`
	Fingerprint    string `json:"fingerprint"`
	TotalRows      int    `json:"totalRows"`
	SuccessfulRows int    `json:"successfulRows"`
	FailedRows     int    `json:"failedRows"`
}

// Report is the serializable outcome of a run.
type Report struct {
	StartedAt      time.Time        `json:"startedAt"`
	FinishedAt     time.Time        `json:"finishedAt"`
	RunID          string           `json:"runId"`
	OutputPath     string           `json:"outputPath"`
	UploadLocation string           `json:"uploadLocation,omitempty"`
	Partners       []PartnerSummary `json:"partners"`
	Files          []FileSummary    `json:"files"`
	DurationMillis int64            `json:"durationMs"`
	RecordsWritten int              `json:"recordsWritten"`
}

// New builds a report for res. Partners appear in processing order.
func New(runID string, res *pipeline.Result) *Report {
	rep := &Report{
		RunID:          runID,
		StartedAt:      res.StartedAt,
		FinishedAt:     res.FinishedAt,
		OutputPath:     res.OutputPath,
		UploadLocation: res.UploadLocation,
		RecordsWritten: len(res.Records),
		Partners:       make([]PartnerSummary, 0, len(res.Partners)),
		Files:          make([]FileSummary, 0, len(res.Files)),
	}

	if !res.FinishedAt.IsZero() {
		rep.DurationMillis = res.FinishedAt.Sub(res.StartedAt).Milliseconds()
	}

	for _, id := range res.Partners {
		stats := res.Stats[id]
		if stats == nil {
			continue
		}

		failures := stats.Failures
		if failures == nil {
			failures = []models.FailureDetail{}
		}

		rep.Partners = append(rep.Partners, PartnerSummary{
			ID:             id,
			File:           stats.File,
			TotalRows:      stats.TotalRows,
			SuccessfulRows: stats.SuccessfulRows,
			FailedRows:     stats.FailedRows,
			SuccessRate:    stats.SuccessRate(),
			Failures:       failures,
		})
	}

	for _, f := range res.Files {
		rep.Files = append(rep.Files, FileSummary{
			PartnerID:      f.PartnerID,
			File:           f.Stats.File,
			Fingerprint:    f.Stats.Fingerprint,
			TotalRows:      f.Stats.TotalRows,
			SuccessfulRows: f.Stats.SuccessfulRows,
			FailedRows:     f.Stats.FailedRows,
		})
	}

	return rep
}

// WriteJSON writes rep to path as indented JSON.
func WriteJSON(path string, rep *Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
