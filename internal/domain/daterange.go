package domain

import (
	"esports-tracker/internal/constants"
	"time"
)

// DateRange bounds are inclusive calendar dates; a nil bound is unbounded on
// that side. An inverted range is valid and simply matches nothing.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange is permissive: an empty or unparsable value becomes an
// absent bound rather than an error.
func ParseDateRange(start, end string) DateRange {
	return DateRange{Start: parseDate(start), End: parseDate(end)}
}

func parseDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse(constants.DateLayout, v)
	if err != nil {
		return nil
	}
	return &t
}

func (r DateRange) Contains(d time.Time) bool {
	d = TruncateDate(d)
	if r.Start != nil && d.Before(*r.Start) {
		return false
	}
	if r.End != nil && d.After(*r.End) {
		return false
	}
	return true
}

func (r DateRange) Unbounded() bool {
	return r.Start == nil && r.End == nil
}

func (r DateRange) StartString() string {
	return FormatDate(r.Start)
}

func (r DateRange) EndString() string {
	return FormatDate(r.End)
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(constants.DateLayout)
}

func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
