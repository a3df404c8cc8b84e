// Package models defines the records and bookkeeping types shared by the pipeline.
package models

// Canonical field names.
const (
	FieldExternalID  = "external_id"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldDOB         = "dob"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldPartnerCode = "partner_code"
)

// FieldOrder is the fixed column order of the unified output.
var FieldOrder = []string{
	FieldExternalID,
	FieldFirstName,
	FieldLastName,
	FieldDOB,
	FieldEmail,
	FieldPhone,
	FieldPartnerCode,
}

// IsCanonicalField reports whether name is one of the canonical fields.
func IsCanonicalField(name string) bool {
	for _, f := range FieldOrder {
		if f == name {
			return true
		}
	}

	return false
}

// RawRow maps a partner's column names to the raw values of one data line.
type RawRow map[string]string

// Record is a normalized eligibility record.
type Record struct {
	ExternalID  string `json:"external_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DOB         string `json:"dob"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	PartnerCode string `json:"partner_code"`
}

// Get returns the value of a canonical field, or "" for unknown names.
func (r Record) Get(field string) string {
	switch field {
	case FieldExternalID:
		return r.ExternalID
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldDOB:
		return r.DOB
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldPartnerCode:
		return r.PartnerCode
	default:
		return ""
	}
}

// Values returns the record's values in the given field order.
func (r Record) Values(fields []string) []string {
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = r.Get(f)
	}

	return values
}
