package timeutil

import (
	"testing"
)

func TestNormalize_SerialAnchor(t *testing.T) {
	if got := Normalize("25569"); got != "1970-01-01" {
		t.Errorf("serial 25569 = %q, want 1970-01-01", got)
	}
	if got := Normalize("45200"); got != "2023-10-01" {
		t.Errorf("serial 45200 = %q, want 2023-10-01", got)
	}
	if got := FromSerial(25570); got != "1970-01-02" {
		t.Errorf("FromSerial(25570) = %q, want 1970-01-02", got)
	}
	// Fractional serials truncate to the day
	if got := FromSerial(25569.75); got != "1970-01-01" {
		t.Errorf("FromSerial(25569.75) = %q, want 1970-01-01", got)
	}
}

func TestNormalize_DayMonthYearOrder(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"31/12/2025", "2025-12-31"},
		{"1/2/2024", "2024-02-01"},
		{"05/09/25", "2025-09-05"}, // 2-digit year promoted
		{"15/06/2024", "2024-06-15"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_ISOPassthrough(t *testing.T) {
	if got := Normalize("2024-03-07"); got != "2024-03-07" {
		t.Errorf("ISO passthrough = %q", got)
	}
}

func TestNormalize_UnparseableYieldsEmpty(t *testing.T) {
	for _, in := range []string{"", "not a date", "12/ab/2024", "99", "--"} {
		if got := Normalize(in); got != "" {
			t.Errorf("Normalize(%q) = %q, want empty", in, got)
		}
	}
}

func TestNormalizeValue_NumericSerial(t *testing.T) {
	if got := NormalizeValue(float64(25569)); got != "1970-01-01" {
		t.Errorf("NormalizeValue(25569.0) = %q", got)
	}
	if got := NormalizeValue(45200); got != "2023-10-01" {
		t.Errorf("NormalizeValue(45200) = %q", got)
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	dates := []string{"2024-01-31", "2025-12-01", "1970-01-01", "2023-10-01"}
	for _, iso := range dates {
		disp := Display(iso)
		if got := Normalize(disp); got != iso {
			t.Errorf("Normalize(Display(%q)) = %q, want %q (display was %q)", iso, got, iso, disp)
		}
	}
	if got := Display(""); got != "-" {
		t.Errorf("Display(\"\") = %q, want -", got)
	}
}

func TestParseFlexible(t *testing.T) {
	tests := []struct {
		in      string
		y, m, d int
		ok      bool
	}{
		{"25/07/2024", 2024, 7, 25, true},
		{"2024-07-25", 2024, 7, 25, true},
		{"5/1/24", 2024, 1, 5, true},
		{"", 0, 0, 0, false},
		{"garbage", 0, 0, 0, false},
		{"2024-13-01", 0, 0, 0, false},
	}
	for _, tt := range tests {
		y, m, d, ok := ParseFlexible(tt.in)
		if ok != tt.ok || y != tt.y || m != tt.m || d != tt.d {
			t.Errorf("ParseFlexible(%q) = (%d,%d,%d,%v), want (%d,%d,%d,%v)",
				tt.in, y, m, d, ok, tt.y, tt.m, tt.d, tt.ok)
		}
	}
}
