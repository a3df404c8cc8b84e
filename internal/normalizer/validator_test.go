package normalizer

import (
	"strings"
	"testing"

	"eligibility/internal/models"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator(nil)
	if v == nil {
		t.Fatal("NewValidator returned nil")
	}
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(nil)

	record := models.Record{
		ExternalID: "ABC123",
		FirstName:  "John",
		LastName:   "Doe",
		DOB:        "1955-03-15",
		Email:      "john@example.com",
		Phone:      "555-123-4567",
	}

	result := v.Validate(record, 2)
	if !result.IsValid {
		t.Errorf("Validate returned invalid for valid record: %v", result.Errors)
	}

	if len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Errorf("Expected no errors or warnings, got %v / %v", result.Errors, result.Warnings)
	}
}

func TestValidator_MissingExternalID(t *testing.T) {
	v := NewValidator(nil)

	for _, id := range []string{"", "   ", "\t"} {
		record := models.Record{
			ExternalID: id,
			FirstName:  "John",
			DOB:        "bad",
			Email:      "bad",
			Phone:      "bad",
		}

		result := v.Validate(record, 5)
		if result.IsValid {
			t.Errorf("Validate(%q) expected invalid", id)
		}

		if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "external_id") {
			t.Errorf("Validate(%q) errors = %v, want one external_id error", id, result.Errors)
		}

		if len(result.Warnings) != 3 {
			t.Errorf("Expected all warning rules to run, got %v", result.Warnings)
		}
	}
}

func TestValidator_Warnings(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		name   string
		record models.Record
		want   string
	}{
		{"Invalid email", models.Record{ExternalID: "id", Email: "not-an-email"}, "email"},
		{"Email without TLD", models.Record{ExternalID: "id", Email: "a@b"}, "email"},
		{"Short TLD", models.Record{ExternalID: "id", Email: "a@b.c"}, "email"},
		{"Unformatted phone", models.Record{ExternalID: "id", Phone: "123"}, "Phone"},
		{"Non ISO dob", models.Record{ExternalID: "id", DOB: "03/15/1955"}, "dob"},
		{"Impossible dob", models.Record{ExternalID: "id", DOB: "2001-02-30"}, "dob"},
		{"Unpadded dob", models.Record{ExternalID: "id", DOB: "2001-2-3"}, "dob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.record, 2)
			if !result.IsValid {
				t.Errorf("Warnings must not invalidate the record: %v", result.Errors)
			}

			if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], tt.want) {
				t.Errorf("Warnings = %v, want one mentioning %q", result.Warnings, tt.want)
			}
		})
	}
}

func TestValidator_EmptyOptionalFields(t *testing.T) {
	v := NewValidator(nil)

	result := v.Validate(models.Record{ExternalID: "id"}, 2)
	if !result.IsValid || len(result.Warnings) != 0 {
		t.Errorf("Expected clean verdict for empty optional fields, got %+v", result)
	}
}
