package timeutil

import (
	"time"
)

// ICT is the Indochina Time location (UTC+7), the port's local timezone
var ICT *time.Location

func init() {
	var err error
	ICT, err = time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		// Fallback: create fixed zone if Asia/Ho_Chi_Minh not available
		ICT = time.FixedZone("ICT", 7*60*60) // UTC+7
	}
}

// Now returns the current time in ICT
func Now() time.Time {
	return time.Now().In(ICT)
}

// ToICT converts any time to ICT
func ToICT(t time.Time) time.Time {
	return t.In(ICT)
}

// StartOfDay returns the start of day (00:00:00) in ICT for the given time
func StartOfDay(t time.Time) time.Time {
	ict := t.In(ICT)
	return time.Date(ict.Year(), ict.Month(), ict.Day(), 0, 0, 0, 0, ICT)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DisplayLayout  = "02/01/2006"
	DateTimeLayout = "2006-01-02 15:04:05"
)
