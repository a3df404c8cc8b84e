package output

import (
	"encoding/csv"
	"io"

	"eligibility/internal/models"
)

// CSVEncoder writes a header line and one comma-delimited line per record.
type CSVEncoder struct{}

// Encode implements Encoder.
func (CSVEncoder) Encode(w io.Writer, fields []string, records []models.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(fields); err != nil {
		return err
	}

	for _, r := range records {
		if err := cw.Write(r.Values(fields)); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
