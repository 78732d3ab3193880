package types

import (
	"fmt"
	"time"
)

// FormatDateTime converts an RFC3339 datetime string to YYYY-MM-DD HH:MM
func FormatDateTime(dateString string) string {
	t, err := time.Parse(time.RFC3339, dateString)
	if err != nil {
		return dateString
	}

	return t.Format("2006-01-02 15:04")
}

// FormatDate converts an RFC3339 or YYYY-MM-DD date to YYYY-MM-DD.
// Values in any other format are returned unchanged.
func FormatDate(dateString string) string {
	if t, err := time.Parse(time.RFC3339, dateString); err == nil {
		return t.Format(time.DateOnly)
	}
	return dateString
}

func FormatClaimsReturned(count int) string {
	if count == 1 {
		return "1 claim"
	}
	return fmt.Sprintf("%d claims", count)
}
