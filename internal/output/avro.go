package output

import (
	"fmt"
	"io"

	"eligibility/internal/models"

	"github.com/hamba/avro/v2/ocf"
)

// AvroRecordName is the name of the record schema in Avro output.
const AvroRecordName = "EligibilityRecord"

// AvroEncoder writes an Avro object container file. The record schema has
// one string field per output field.
type AvroEncoder struct{}

// Schema returns the Avro schema for fields.
func (AvroEncoder) Schema(fields []string) (string, error) {
	type avroField struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}

	schema := struct {
		Type      string      `json:"type"`
		Name      string      `json:"name"`
		Namespace string      `json:"namespace"`
		Fields    []avroField `json:"fields"`
	}{
		Type:      "record",
		Name:      AvroRecordName,
		Namespace: "eligibility",
	}

	for _, f := range fields {
		schema.Fields = append(schema.Fields, avroField{Name: f, Type: "string"})
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to build avro schema: %w", err)
	}

	return string(data), nil
}

// Encode implements Encoder.
func (a AvroEncoder) Encode(w io.Writer, fields []string, records []models.Record) error {
	schema, err := a.Schema(fields)
	if err != nil {
		return err
	}

	enc, err := ocf.NewEncoder(schema, w, ocf.WithCodec(ocf.Deflate))
	if err != nil {
		return fmt.Errorf("failed to create avro encoder: %w", err)
	}

	for _, r := range records {
		row := make(map[string]any, len(fields))
		for _, f := range fields {
			row[f] = r.Get(f)
		}

		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to encode avro record: %w", err)
		}
	}

	return enc.Close()
}
