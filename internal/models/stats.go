package models

// FailureDetail describes one rejected row.
type FailureDetail struct {
	RawData   RawRow   `json:"rawData"`
	Errors    []string `json:"errors"`
	RowNumber int      `json:"rowNumber"`
}

// ProcessingStats accumulates row outcomes for one partner file.
type ProcessingStats struct {
	File           string          `json:"file,omitempty"`
	Fingerprint    string          `json:"fingerprint,omitempty"`
	Failures       []FailureDetail `json:"failures"`
	TotalRows      int             `json:"totalRows"`
	SuccessfulRows int             `json:"successfulRows"`
	FailedRows     int             `json:"failedRows"`
}

// AddSuccess records an accepted row.
func (s *ProcessingStats) AddSuccess() {
	s.TotalRows++
	s.SuccessfulRows++
}

// AddFailure records a rejected row together with its original raw data.
func (s *ProcessingStats) AddFailure(rowNum int, errs []string, raw RawRow) {
	s.TotalRows++
	s.FailedRows++
	s.Failures = append(s.Failures, FailureDetail{
		RowNumber: rowNum,
		Errors:    errs,
		RawData:   raw,
	})
}

// SuccessRate returns the share of successful rows as a percentage.
func (s *ProcessingStats) SuccessRate() float64 {
	if s.TotalRows == 0 {
		return 0
	}

	return float64(s.SuccessfulRows) / float64(s.TotalRows) * 100
}
