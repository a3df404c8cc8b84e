package normalizer

import (
	"sort"

	"eligibility/internal/models"
)

// MapColumns renames a raw row's partner columns to canonical field names.
// Columns missing from mapping are dropped and canonical fields without a
// source column stay absent. When several columns map to one field, the
// lexically last column name wins.
func MapColumns(raw models.RawRow, mapping map[string]string) map[string]string {
	columns := make([]string, 0, len(mapping))
	for column := range mapping {
		columns = append(columns, column)
	}

	sort.Strings(columns)

	mapped := make(map[string]string, len(mapping))

	for _, column := range columns {
		if value, ok := raw[column]; ok {
			mapped[mapping[column]] = value
		}
	}

	return mapped
}
