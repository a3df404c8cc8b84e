// Package normalizer turns partner rows into canonical eligibility records.
package normalizer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"eligibility/internal/config"
	"eligibility/internal/logger"
	"eligibility/internal/models"
	"eligibility/pkg/datefmt"
)

// ErrTruncatedID is returned when a short row was cut off before the column
// that supplies external_id.
var ErrTruncatedID = errors.New("row ends before the external_id column")

// Processor maps and transforms raw rows for one partner.
type Processor struct {
	transformer *Transformer
	mapping     map[string]string
	idColumns   []string
	partnerCode string
	dateFormat  string
}

// NewProcessor creates a processor for partner. It fails when the partner's
// date format cannot be used for parsing.
func NewProcessor(partner *config.PartnerConfig, log *logger.Logger) (*Processor, error) {
	if _, err := datefmt.Layout(partner.DateFormat); err != nil {
		return nil, fmt.Errorf("partner %s: %w", partner.PartnerCode, err)
	}

	var idColumns []string

	for column, field := range partner.ColumnMapping {
		if field == models.FieldExternalID {
			idColumns = append(idColumns, column)
		}
	}

	sort.Strings(idColumns)

	return &Processor{
		transformer: NewTransformer(log),
		mapping:     partner.ColumnMapping,
		idColumns:   idColumns,
		partnerCode: partner.PartnerCode,
		dateFormat:  partner.DateFormat,
	}, nil
}

// Process transforms a raw row into a record carrying all canonical fields.
func (p *Processor) Process(raw models.RawRow) models.Record {
	mapped := MapColumns(raw, p.mapping)

	return models.Record{
		ExternalID:  strings.TrimSpace(mapped[models.FieldExternalID]),
		FirstName:   p.transformer.TitleCase(mapped[models.FieldFirstName]),
		LastName:    p.transformer.TitleCase(mapped[models.FieldLastName]),
		DOB:         p.transformer.FormatDate(mapped[models.FieldDOB], p.dateFormat),
		Email:       p.transformer.Lowercase(mapped[models.FieldEmail]),
		Phone:       p.transformer.FormatPhone(mapped[models.FieldPhone]),
		PartnerCode: p.partnerCode,
	}
}

// CheckTruncated decides whether a short row can still be processed. Columns
// cut off the end of a row normalize to "" like absent ones, except the
// column supplying external_id: without it there is no record to validate.
func (p *Processor) CheckTruncated(raw models.RawRow, missing []string) error {
	cut := make(map[string]bool, len(missing))
	for _, column := range missing {
		cut[column] = true
	}

	// Same precedence as MapColumns: the lexically last column present wins.
	for i := len(p.idColumns) - 1; i >= 0; i-- {
		column := p.idColumns[i]

		if _, ok := raw[column]; ok {
			return nil
		}

		if cut[column] {
			return fmt.Errorf("%w: %s", ErrTruncatedID, column)
		}
	}

	return nil
}
