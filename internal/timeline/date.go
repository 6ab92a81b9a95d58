package timeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// monthIndex maps lowercase month names to zero-based month indexes.
// Spring and Fall stand for the start of the academic term.
var monthIndex = map[string]int{
	"jan": 0, "feb": 1, "mar": 2, "apr": 3, "may": 4, "jun": 5,
	"jul": 6, "aug": 7, "sep": 8, "oct": 9, "nov": 10, "dec": 11,
	"january": 0, "february": 1, "march": 2, "april": 3, "june": 5,
	"july": 6, "august": 7, "september": 8, "october": 9, "november": 10, "december": 11,
	"spring": 2,
	"fall":   8,
}

var (
	monthYearPattern = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{4})$`)
	yearPattern      = regexp.MustCompile(`^(\d{4})$`)
)

// layouts are tried before the generic parser, most specific first.
var layouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// DateParser turns loosely formatted date strings into comparable times.
// The zero value uses the wall clock for "present".
type DateParser struct {
	Now func() time.Time
}

type matcher func(p DateParser, s string) (time.Time, bool)

// matchers run in order; the first that accepts the input wins.
var matchers = []matcher{
	matchEmpty,
	matchPresent,
	matchMonthYear,
	matchYear,
	matchLayouts,
	matchAny,
}

// ParseDate parses s relative to the current time. It never fails:
// empty and unrecognized input yields the zero time, which sorts last.
func ParseDate(s string) time.Time {
	return DateParser{}.Parse(s)
}

// Parse resolves s to a time. See ParseDate.
func (p DateParser) Parse(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, match := range matchers {
		if t, ok := match(p, s); ok {
			return t
		}
	}
	return time.Time{}
}

func (p DateParser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func matchEmpty(_ DateParser, s string) (time.Time, bool) {
	return time.Time{}, s == ""
}

func matchPresent(p DateParser, s string) (time.Time, bool) {
	if !strings.EqualFold(s, "present") {
		return time.Time{}, false
	}
	return p.now(), true
}

func matchMonthYear(_ DateParser, s string) (time.Time, bool) {
	m := monthYearPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, false
	}
	month := monthIndex[strings.ToLower(m[1])]
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC), true
}

func matchYear(_ DateParser, s string) (time.Time, bool) {
	m := yearPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
}

func matchLayouts(_ DateParser, s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func matchAny(_ DateParser, s string) (t time.Time, ok bool) {
	// dateparse has panicked on pathological input in the past.
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()
	parsed, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed.UTC(), true
}
