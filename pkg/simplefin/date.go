package simplefin

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateToUnix converts a YYYY-MM-DD date string to a Unix timestamp at UTC
// midnight. Rejects anything that is not a valid calendar date.
func DateToUnix(value string) (int64, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return 0, fmt.Errorf("unable to parse date: %s", value)
	}
	return t.Unix(), nil
}

// UnixToDate formats a Unix timestamp as a YYYY-MM-DD date string in UTC.
// Inverse of DateToUnix for timestamps at UTC midnight.
func UnixToDate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(dateLayout)
}
