package normalizer

import (
	"errors"
	"testing"

	"eligibility/internal/config"
	"eligibility/internal/models"
)

func acmeConfig() *config.PartnerConfig {
	return &config.PartnerConfig{
		PartnerCode: "ACME",
		Description: "Acme Health",
		FilePattern: "acme*.txt",
		Delimiter:   "|",
		Encoding:    "utf-8",
		HasHeader:   true,
		ColumnMapping: map[string]string{
			"MBI":   "external_id",
			"FNAME": "first_name",
			"LNAME": "last_name",
			"DOB":   "dob",
			"EMAIL": "email",
			"PHONE": "phone",
		},
		DateFormat: "%m/%d/%Y",
	}
}

func TestNewProcessor(t *testing.T) {
	p, err := NewProcessor(acmeConfig(), nil)
	if err != nil {
		t.Fatalf("NewProcessor returned error: %v", err)
	}

	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
}

func TestNewProcessor_BadDateFormat(t *testing.T) {
	cfg := acmeConfig()
	cfg.DateFormat = "%Q"

	if _, err := NewProcessor(cfg, nil); err == nil {
		t.Error("NewProcessor expected error for unsupported date format")
	}
}

func TestProcessor_Process(t *testing.T) {
	p, err := NewProcessor(acmeConfig(), nil)
	if err != nil {
		t.Fatalf("NewProcessor returned error: %v", err)
	}

	raw := models.RawRow{
		"MBI":   "X1",
		"FNAME": "john",
		"LNAME": "DOE",
		"DOB":   "03/15/1955",
		"EMAIL": "J@X.COM",
		"PHONE": "5551234567",
	}

	want := models.Record{
		ExternalID:  "X1",
		FirstName:   "John",
		LastName:    "Doe",
		DOB:         "1955-03-15",
		Email:       "j@x.com",
		Phone:       "555-123-4567",
		PartnerCode: "ACME",
	}

	got := p.Process(raw)
	if got != want {
		t.Errorf("Process() = %+v, want %+v", got, want)
	}

	result := NewValidator(nil).Validate(got, 2)
	if !result.IsValid || len(result.Warnings) != 0 {
		t.Errorf("Expected valid verdict with no warnings, got %+v", result)
	}
}

func TestProcessor_Process_MissingColumns(t *testing.T) {
	p, err := NewProcessor(acmeConfig(), nil)
	if err != nil {
		t.Fatalf("NewProcessor returned error: %v", err)
	}

	got := p.Process(models.RawRow{"MBI": "  X9  "})

	want := models.Record{ExternalID: "X9", PartnerCode: "ACME"}
	if got != want {
		t.Errorf("Process() = %+v, want %+v", got, want)
	}
}

func TestProcessor_Process_UnformattablePhone(t *testing.T) {
	p, err := NewProcessor(acmeConfig(), nil)
	if err != nil {
		t.Fatalf("NewProcessor returned error: %v", err)
	}

	got := p.Process(models.RawRow{"MBI": "X1", "PHONE": " 123 "})
	if got.Phone != "123" {
		t.Errorf("Phone = %q, want trimmed original 123", got.Phone)
	}

	result := NewValidator(nil).Validate(got, 2)
	if !result.IsValid {
		t.Errorf("Expected valid verdict, got errors %v", result.Errors)
	}

	if len(result.Warnings) != 1 {
		t.Errorf("Expected one phone warning, got %v", result.Warnings)
	}
}

func TestProcessor_CheckTruncated(t *testing.T) {
	p, err := NewProcessor(acmeConfig(), nil)
	if err != nil {
		t.Fatalf("NewProcessor returned error: %v", err)
	}

	tests := []struct {
		name    string
		raw     models.RawRow
		missing []string
		wantErr bool
	}{
		{
			name:    "optional columns cut off",
			raw:     models.RawRow{"MBI": "X2", "FNAME": "jane"},
			missing: []string{"LNAME", "DOB", "EMAIL", "PHONE"},
		},
		{
			name:    "id column cut off",
			raw:     models.RawRow{"FNAME": "jane"},
			missing: []string{"MBI"},
			wantErr: true,
		},
		{
			name: "nothing cut off",
			raw:  models.RawRow{"MBI": "X1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckTruncated(tt.raw, tt.missing)
			if tt.wantErr && !errors.Is(err, ErrTruncatedID) {
				t.Errorf("Expected ErrTruncatedID, got %v", err)
			}

			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestProcessor_CheckTruncated_SharedIDColumns(t *testing.T) {
	cfg := acmeConfig()
	cfg.ColumnMapping = map[string]string{"A_ID": "external_id", "B_ID": "external_id"}

	p, err := NewProcessor(cfg, nil)
	if err != nil {
		t.Fatalf("NewProcessor returned error: %v", err)
	}

	// B_ID would win the mapping, so losing it is fatal even though A_ID is present.
	if err := p.CheckTruncated(models.RawRow{"A_ID": "1"}, []string{"B_ID"}); !errors.Is(err, ErrTruncatedID) {
		t.Errorf("Expected ErrTruncatedID, got %v", err)
	}

	if err := p.CheckTruncated(models.RawRow{"B_ID": "1"}, []string{"A_ID"}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
