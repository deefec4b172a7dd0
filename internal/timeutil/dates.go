package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet day-count serials are anchored so that serial 25569 is
// 1970-01-01 (the Unix epoch).
const serialEpochOffset = 25569

var bareSerialRe = regexp.MustCompile(`^\d{5,}$`)

// FromSerial converts a spreadsheet day-count serial to an ISO date string.
func FromSerial(serial float64) string {
	days := int64(math.Floor(serial - serialEpochOffset))
	return time.Unix(days*86400, 0).UTC().Format(DateLayout)
}

// Normalize converts a heterogeneous date representation into a canonical
// "YYYY-MM-DD" string. Accepted inputs: spreadsheet serials (as bare digit
// strings of 5+ digits), "D/M/Y" with 2- or 4-digit years, "YYYY-MM-DD"
// passthrough, and free text handled by a best-effort parse. Unparseable
// input yields "" — callers treat empty as unknown, not invalid.
func Normalize(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return ""
		}
		d, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		y, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errD != nil || errM != nil || errY != nil {
			return ""
		}
		if y < 100 {
			y += 2000
		}
		return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
	}

	if len(s) == 10 && s[4] == '-' && s[7] == '-' {
		return s
	}

	if bareSerialRe.MatchString(s) {
		serial, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ""
		}
		return FromSerial(serial)
	}

	for _, layout := range []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan 2006",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return ""
}

// NormalizeValue normalizes a raw cell value that may arrive as a number
// (spreadsheet serial) or a string.
func NormalizeValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return FromSerial(x)
	case int:
		return FromSerial(float64(x))
	case int64:
		return FromSerial(float64(x))
	case string:
		return Normalize(x)
	default:
		return Normalize(fmt.Sprintf("%v", x))
	}
}

// Display renders an ISO date as "DD/MM/YYYY" for forms and print sheets.
// Empty input renders as "-".
func Display(iso string) string {
	if iso == "" {
		return "-"
	}
	t, err := time.Parse(DateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format(DisplayLayout)
}

// ParseFlexible extracts (year, month, day) from a date written either as
// "D/M/Y" or "Y-M-D", detected by separator. Used by filters that must
// accept both the display and the canonical form.
func ParseFlexible(s string) (y, m, d int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, 0, false
	}

	var parts []string
	switch {
	case strings.Contains(s, "/"):
		parts = strings.Split(s, "/")
		if len(parts) != 3 {
			return 0, 0, 0, false
		}
		d, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
		m, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
		y, _ = strconv.Atoi(strings.TrimSpace(parts[2]))
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
		if len(parts) != 3 {
			return 0, 0, 0, false
		}
		y, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
		m, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
		d, _ = strconv.Atoi(strings.TrimSpace(parts[2]))
	default:
		return 0, 0, 0, false
	}

	if y < 100 {
		y += 2000
	}
	if y == 0 || m < 1 || m > 12 || d < 1 || d > 31 {
		return 0, 0, 0, false
	}
	return y, m, d, true
}
