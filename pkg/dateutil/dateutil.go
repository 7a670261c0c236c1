// Package dateutil parses and renders the human-readable dates shown next to blog posts.
//
// All functions are pure. A zero time.Time stands for "no date": ParseDate
// returns it on failure and the Format functions render it as "".
package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

type monthName struct {
	full   string
	abbrev string
}

var monthNames = [12]monthName{
	{"January", "Jan"},
	{"February", "Feb"},
	{"March", "Mar"},
	{"April", "Apr"},
	{"May", "May"},
	{"June", "Jun"},
	{"July", "Jul"},
	{"August", "Aug"},
	{"September", "Sep"},
	{"October", "Oct"},
	{"November", "Nov"},
	{"December", "Dec"},
}

var datePattern = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2}) (\d{2}):(\d{2}):(\d{2})`)

// ParseDate converts a "yyyy-mm-dd hh:mm:ss" string into a local time.
// It returns the zero time if s is empty or does not contain that shape.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}
	}

	n := make([]int, 6)
	for i := range n {
		// The pattern only admits digits, so Atoi cannot fail here.
		n[i], _ = strconv.Atoi(m[i+1])
	}

	// time.Month is 1-based like the input, so no month adjustment is needed.
	return time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], n[5], 0, time.Local)
}

// FormatDateOnly renders t as "March 15, 2020", or "Mar 15, 2020" when
// useAbbreviatedMonth is set. Pass false for the default full month name.
func FormatDateOnly(t time.Time, useAbbreviatedMonth bool) string {
	if t.IsZero() {
		return ""
	}
	name := monthNames[t.Month()-1]
	month := name.full
	if useAbbreviatedMonth {
		month = name.abbrev
	}
	return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
}

// FormatDateTime renders t as "March 15, 2020 at 1:45:30 PM" using a
// 12-hour clock.
func FormatDateTime(t time.Time, useAbbreviatedMonth bool) string {
	if t.IsZero() {
		return ""
	}
	hour := t.Hour()
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	switch {
	case hour > 12:
		hour -= 12
	case hour == 0:
		hour = 12
	}
	return fmt.Sprintf("%s at %d:%02d:%02d %s",
		FormatDateOnly(t, useAbbreviatedMonth), hour, t.Minute(), t.Second(), ampm)
}
