package datefmt

import (
	"errors"
	"testing"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"%m/%d/%Y", "1/2/2006"},
		{"%Y-%m-%d", "2006-1-2"},
		{"%Y%m%d", "200612"},
		{"%d.%m.%y", "2.1.06"},
		{"%d %b %Y", "2 Jan 2006"},
		{"%Y-%m-%d %H:%M:%S", "2006-1-2 15:4:5"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Layout(tt.pattern)
			if err != nil {
				t.Fatalf("Layout(%q) returned error: %v", tt.pattern, err)
			}

			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestLayout_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr error
	}{
		{"Empty", "", ErrEmptyPattern},
		{"Dangling percent", "%Y-%", ErrDanglingPercent},
		{"Unknown directive", "%Q/%Y", ErrUnsupportedDirective},
		{"Literal letter", "%Y-%m-%dT", ErrUnsupportedLiteral},
		{"Literal underscore", "%Y_%m", ErrUnsupportedLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Layout(tt.pattern)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Layout(%q) error = %v, want %v", tt.pattern, err, tt.wantErr)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		value   string
		pattern string
		want    string
		wantErr bool
	}{
		{"03/15/1955", "%m/%d/%Y", "1955-03-15", false},
		{"3/5/1955", "%m/%d/%Y", "1955-03-05", false},
		{"19900115", "%Y%m%d", "1990-01-15", false},
		{"1965-08-10", "%Y-%m-%d", "1965-08-10", false},
		{"02/30/2001", "%m/%d/%Y", "", true},
		{"13/01/2001", "%m/%d/%Y", "", true},
		{"1955-03-15", "%m/%d/%Y", "", true},
		{"03/15/1955 extra", "%m/%d/%Y", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := Parse(tt.value, tt.pattern)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse(%q, %q) expected error, got %v", tt.value, tt.pattern, got)
				}

				return
			}

			if err != nil {
				t.Fatalf("Parse(%q, %q) returned error: %v", tt.value, tt.pattern, err)
			}

			if s := got.Format(ISODate); s != tt.want {
				t.Errorf("Parse(%q, %q) = %s, want %s", tt.value, tt.pattern, s, tt.want)
			}
		})
	}
}
