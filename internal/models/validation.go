package models

// ValidationResult is the verdict for one normalized record.
type ValidationResult struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	IsValid  bool     `json:"isValid"`
}

// NewValidationResult builds a result whose verdict follows from errs.
func NewValidationResult(errs, warnings []string) ValidationResult {
	return ValidationResult{
		Errors:   errs,
		Warnings: warnings,
		IsValid:  len(errs) == 0,
	}
}
