package pipeline

import (
	"errors"
	"fmt"
	"io"

	"eligibility/internal/models"
	"eligibility/internal/normalizer"
	"eligibility/internal/source"
)

// firstDataRow is the number given to the first data row. Row 1 is taken to
// be the header even for headerless files, so numbering is the same for
// every partner.
const firstDataRow = 2

// recordProcessor turns a raw row into a normalized record.
type recordProcessor interface {
	Process(raw models.RawRow) models.Record
	CheckTruncated(raw models.RawRow, missing []string) error
}

// rowResult is the outcome of processing one raw row: either a record with
// its verdict, or a processing failure.
type rowResult struct {
	err     error
	record  models.Record
	verdict models.ValidationResult
}

// ProcessPartner runs one partner file through mapping, normalization and
// validation. Invalid records are left out of the returned set when
// skipInvalid is true. Row failures are recorded in the stats; only errors
// that prevent reading the file are returned.
func (p *Pipeline) ProcessPartner(partnerID, path string, skipInvalid bool) ([]models.Record, *models.ProcessingStats, error) {
	partner, ok := p.cfg.Partner(partnerID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownPartner, partnerID)
	}

	processor, err := normalizer.NewProcessor(partner, p.log)
	if err != nil {
		return nil, nil, err
	}

	delimiter, err := partner.DelimiterRune()
	if err != nil {
		return nil, nil, err
	}

	log := p.log.With("partner", partnerID, "file", path)
	log.Info("processing partner file", "code", partner.PartnerCode)

	reader, err := source.Open(path, source.Options{
		Delimiter: delimiter,
		Encoding:  partner.Encoding,
		HasHeader: partner.HasHeader,
	})
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	stats := &models.ProcessingStats{File: path}

	var records []models.Record

	for rowNum := firstDataRow; ; rowNum++ {
		raw, readErr := reader.Next()
		if errors.Is(readErr, io.EOF) {
			break
		}

		var (
			rowErr   *source.RowError
			shortRow *source.ShortRowError
		)

		switch {
		case readErr == nil, errors.As(readErr, &rowErr):
		case errors.As(readErr, &shortRow):
			log.Debug("row shorter than header", "row", rowNum, "missing", shortRow.Missing)
		default:
			return nil, nil, readErr
		}

		res := p.processRow(processor, raw, readErr, rowNum)

		switch {
		case res.err != nil:
			log.Error("row processing failed", "row", rowNum, "error", res.err)
			stats.AddFailure(rowNum, []string{res.err.Error()}, raw)

		case res.verdict.IsValid:
			records = append(records, res.record)
			stats.AddSuccess()

			for _, w := range res.verdict.Warnings {
				log.Warn(w, "row", rowNum)
			}

		default:
			stats.AddFailure(rowNum, res.verdict.Errors, raw)

			for _, e := range res.verdict.Errors {
				log.Error(e, "row", rowNum)
			}

			if !skipInvalid {
				records = append(records, res.record)
			}
		}
	}

	stats.Fingerprint = reader.Fingerprint()

	log.Info("completed partner file",
		"successful", stats.SuccessfulRows,
		"total", stats.TotalRows,
		"success_rate", fmt.Sprintf("%.1f%%", stats.SuccessRate()),
	)

	return records, stats, nil
}

// processRow normalizes and validates one row. A row that could not be
// parsed, a short row that lost its external_id column, or a panic while
// processing becomes the result's error.
func (p *Pipeline) processRow(processor recordProcessor, raw models.RawRow, readErr error, rowNum int) (res rowResult) {
	var shortRow *source.ShortRowError
	if errors.As(readErr, &shortRow) {
		if err := processor.CheckTruncated(raw, shortRow.Missing); err != nil {
			return rowResult{err: err}
		}
	} else if readErr != nil {
		return rowResult{err: readErr}
	}

	defer func() {
		if r := recover(); r != nil {
			res = rowResult{err: fmt.Errorf("unexpected error: %v", r)}
		}
	}()

	record := processor.Process(raw)

	return rowResult{
		record:  record,
		verdict: p.validator.Validate(record, rowNum),
	}
}
