package output

import (
	"io"

	"eligibility/internal/models"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONLEncoder writes one JSON object per line with keys in field order.
type JSONLEncoder struct{}

// Encode implements Encoder.
func (JSONLEncoder) Encode(w io.Writer, fields []string, records []models.Record) error {
	stream := jsoniter.NewStream(json, w, 4096)

	for _, r := range records {
		stream.WriteObjectStart()

		for i, f := range fields {
			if i > 0 {
				stream.WriteMore()
			}

			stream.WriteObjectField(f)
			stream.WriteString(r.Get(f))
		}

		stream.WriteObjectEnd()
		stream.WriteRaw("\n")

		if stream.Error != nil {
			return stream.Error
		}
	}

	return stream.Flush()
}
