package util

import (
	"strings"
	"testing"
	"time"
)

func TestParseDate_Valid(t *testing.T) {
	cases := []string{"2024-01-01", "2024-12-31", "2025-06-15", " 2024-02-29 "}
	for _, in := range cases {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", in, err)
			continue
		}
		if got.Location() != time.UTC {
			t.Errorf("ParseDate(%q) location = %v, want UTC", in, got.Location())
		}
		if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
			t.Errorf("ParseDate(%q) carries time-of-day %02d:%02d:%02d", in, h, m, s)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	cases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
		"2023-02-29", // not a leap year
	}
	for _, in := range cases {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", in)
		}
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription("Compras do mes"); err != nil {
		t.Errorf("ValidateDescription(valid) error = %v, want nil", err)
	}
	for _, in := range []string{"", "   ", strings.Repeat("x", 256)} {
		if err := ValidateDescription(in); err == nil {
			t.Errorf("ValidateDescription(%q) error = nil, want error", in)
		}
	}
}
