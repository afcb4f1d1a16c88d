// Package format holds pure display formatting helpers for bot replies.
// Every function is deterministic for a given input and reads no ambient
// state, including the clock.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	dateLayout = "2006-01-02"
	// Long-form date used in scheduling confirmations, e.g. "May 21, 2019".
	displayDateLayout = "January 2, 2006"
	// Clock rendering used in scheduling confirmations, e.g. "3:00 PM".
	displayTimeLayout = "3:04 PM"
)

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Date renders the calendar-date portion of a combined date-time string as a
// reader-friendly date. The input keeps only what precedes the 'T'
// separator; a value that does not parse is returned unchanged.
func Date(value string) string {
	datePart := value
	if idx := strings.IndexByte(value, 'T'); idx >= 0 {
		datePart = value[:idx]
	}

	t, err := time.Parse(dateLayout, datePart)
	if err != nil {
		return value
	}
	return t.Format(displayDateLayout)
}

// Time renders the clock portion of an RFC 3339 date-time string in the
// offset the string itself carries. A value that does not parse is returned
// unchanged.
func Time(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format(displayTimeLayout)
}

// Duration renders an amount/unit pair as display text, e.g. "30 minutes"
// or "1.5 hours". The amount is printed without trailing zeros.
func Duration(amount float64, unit string) string {
	return fmt.Sprintf("%s %s", Number(amount), unit)
}

// Number prints a float the way it would appear in a chat message: no
// exponent form and no trailing zeros.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
