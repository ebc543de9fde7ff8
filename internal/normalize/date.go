package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseableDate reports a raw date that matches no known encoding. The
// caller decides whether to skip the record or carry on with an unknown
// season.
var ErrUnparseableDate = errors.New("unparseable date")

var yearOnlyRegex = regexp.MustCompile(`^\d{4}$`)

// Raw encodings observed across the source datasets. Day-first layouts come
// before month-first ones because Brazilian sources are day-first; a
// month-first value only parses here when day-first is impossible.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
}

// Date is the single internal date representation. YearOnly marks values
// recovered from year-only records; Time is then January 1st of that year.
type Date struct {
	Time     time.Time
	YearOnly bool
}

// SeasonYear derives the season a match belongs to. Brazilian competitions
// run within one calendar year, so two raw encodings of dates in the same
// edition always agree here regardless of their granularity.
func (d Date) SeasonYear() int {
	return d.Time.Year()
}

// ParseDate normalizes one raw date string.
func ParseDate(raw string) (Date, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Date{}, fmt.Errorf("%w: empty value", ErrUnparseableDate)
	}

	if yearOnlyRegex.MatchString(trimmed) {
		year, err := strconv.Atoi(trimmed)
		if err != nil || year < 1900 || year > 2100 {
			return Date{}, fmt.Errorf("%w: %q", ErrUnparseableDate, raw)
		}
		return Date{Time: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), YearOnly: true}, nil
	}

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		return Date{Time: parsed.UTC()}, nil
	}

	return Date{}, fmt.Errorf("%w: %q", ErrUnparseableDate, raw)
}
