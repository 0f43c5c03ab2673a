package model

import "time"

const (
	// DateLayout is the storage format for calendar dates (YYYY-MM-DD)
	DateLayout = "2006-01-02"
	// DisplayDateLayout renders dates for option labels, e.g. "February 1, 2026"
	DisplayDateLayout = "January 2, 2006"
	// TimestampLayout is used for exported registration timestamps
	TimestampLayout = "2006-01-02 15:04:05"
)

// DateLabel formats an ISO date for display. Unparseable input is returned as is.
func DateLabel(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(DisplayDateLayout)
}
