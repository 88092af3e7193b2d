// Package dateutil implements the permissive date handling used by the
// analyzer: extraction of calendar dates from free-form strings and
// comparison of dates against optional window bounds.
package dateutil

import (
	"regexp"
	"time"
)

// datePattern matches a strict YYYY-MM-DD calendar date: years 1900-2099,
// months 01-12, day-of-month validated against the 30/31-day months.
// Leap years are not validated by the pattern.
var datePattern = regexp.MustCompile(`(19|20)\d\d-((0[1-9]|1[012])-(0[1-9]|[12]\d)|(0[13-9]|1[012])-30|(0[13578]|1[02])-31)`)

const dateLayout = "2006-01-02"

// ExtractDate returns the first calendar date embedded anywhere in s, or nil
// when no valid date substring is present. Malformed input is never an error:
// an unrecognizable date behaves exactly like an absent one downstream, where
// an absent date never satisfies a window bound.
func ExtractDate(s string) *time.Time {
	match := datePattern.FindString(s)
	if match == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, match)
	if err != nil {
		// February 29 of a non-leap year passes the pattern but not the
		// calendar; it falls back to absent like any other malformed date.
		return nil
	}
	return &t
}

// Before and After are the comparators used for the lower and upper window bounds.
func Before(bound, candidate time.Time) bool { return bound.Before(candidate) }
func After(bound, candidate time.Time) bool  { return bound.After(candidate) }

// Within reports whether candidate satisfies bound under cmp. A nil bound is
// unbounded and always satisfied; a nil candidate never satisfies a present
// bound. This is the single place holding that contract.
func Within(bound, candidate *time.Time, cmp func(bound, candidate time.Time) bool) bool {
	if bound == nil {
		return true
	}
	if candidate == nil {
		return false
	}
	return cmp(*bound, *candidate)
}

// Window is an optional analysis date range. Either bound may be nil,
// meaning unbounded on that side.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls strictly inside the window: start < t and
// end > t, exclusive on both sides.
func (w Window) Contains(t *time.Time) bool {
	return Within(w.Start, t, Before) && Within(w.End, t, After)
}
