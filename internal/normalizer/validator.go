package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"eligibility/internal/logger"
	"eligibility/internal/models"
	"eligibility/pkg/datefmt"
)

// ErrMsgMissingExternalID is the blocking error for records without an id.
const ErrMsgMissingExternalID = "Missing required field: external_id"

// Validator checks normalized records. Only a missing external_id blocks a
// record; malformed optional fields produce warnings.
type Validator struct {
	isoDatePattern *regexp.Regexp
	emailPattern   *regexp.Regexp
	phonePattern   *regexp.Regexp
	log            *logger.Logger
}

// NewValidator creates a new validator instance.
func NewValidator(log *logger.Logger) *Validator {
	if log == nil {
		log = logger.Discard()
	}

	return &Validator{
		isoDatePattern: regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		emailPattern:   regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`),
		phonePattern:   regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`),
		log:            log,
	}
}

// Validate runs every rule against record. rowNum only labels diagnostics.
func (v *Validator) Validate(record models.Record, rowNum int) models.ValidationResult {
	var errs, warnings []string

	if strings.TrimSpace(record.ExternalID) == "" {
		errs = append(errs, ErrMsgMissingExternalID)
	}

	if record.DOB != "" && !v.isISODate(record.DOB) {
		warnings = append(warnings, fmt.Sprintf("Invalid date format for dob: '%s'", record.DOB))
	}

	if record.Email != "" && !v.emailPattern.MatchString(record.Email) {
		warnings = append(warnings, fmt.Sprintf("Invalid email format: '%s'", record.Email))
	}

	if record.Phone != "" && !v.phonePattern.MatchString(record.Phone) {
		warnings = append(warnings, fmt.Sprintf("Phone may have unexpected format: '%s'", record.Phone))
	}

	v.log.Debug("validated record", "row", rowNum, "errors", len(errs), "warnings", len(warnings))

	return models.NewValidationResult(errs, warnings)
}

func (v *Validator) isISODate(value string) bool {
	if !v.isoDatePattern.MatchString(value) {
		return false
	}

	_, err := time.Parse(datefmt.ISODate, value)

	return err == nil
}
