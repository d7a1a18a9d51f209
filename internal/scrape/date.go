package scrape

import (
	"regexp"
	"time"

	"github.com/araddon/dateparse"
)

var datePattern = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)

// Date finds the first DD/MM/YYYY date in text that is a real calendar day.
//
// The day is read first; month-first is tried only when the day-first reading
// can't be a date (e.g. 3/14/2026). The result is midnight UTC on that day, whatever
// timezone the page was written in.
func Date(text string) (time.Time, bool) {
	for _, m := range datePattern.FindAllString(text, -1) {
		t, err := dateparse.ParseIn(m, time.UTC,
			dateparse.PreferMonthFirst(false),
			dateparse.RetryAmbiguousDateWithSwap(true),
		)
		// Year 0 isn't a calendar year.
		if err != nil || t.Year() < 1 {
			continue
		}

		y, mo, d := t.Date()
		return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}
