package pipeline

import (
	"fmt"
	"time"

	"github.com/raoulx24/retentions/internal/ruleset"
)

// bucketKey computes the calendar slot label for t under granularity
// g (the human-readable bucket-key in reason tokens, e.g.
// "days[2026-01-31]"), and the half-open [start, end) interval of
// that slot, all in local civil time (§3 "Bucket key"). Week labels
// carry no year, so callers dedup slots on start, not on the label.
func bucketKey(g ruleset.Granularity, t time.Time) (label string, start, end time.Time) {
	t = t.Local()
	loc := t.Location()

	switch g {
	case ruleset.Minutes:
		start = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
		end = start.Add(time.Minute)
		label = start.Format("2006-01-02T15:04")

	case ruleset.Hours:
		start = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
		end = start.Add(time.Hour)
		label = start.Format("2006-01-02T15")

	case ruleset.Days:
		start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 1)
		label = start.Format("2006-01-02")

	case ruleset.Weeks:
		year, week := t.ISOWeek()
		start = isoWeekStart(year, week, loc)
		end = start.AddDate(0, 0, 7)
		label = fmt.Sprintf("W%02d", week)

	case ruleset.Week13:
		year, week := t.ISOWeek()
		group := (week - 1) / 13
		start = isoWeekStart(year, group*13+1, loc)
		end = start.AddDate(0, 0, 13*7)
		label = fmt.Sprintf("%d-G%d", year, group)

	case ruleset.Month:
		start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
		label = start.Format("2006-01")

	case ruleset.Quarter:
		q := (int(t.Month())-1)/3 + 1
		startMonth := time.Month((q-1)*3 + 1)
		start = time.Date(t.Year(), startMonth, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 3, 0)
		label = fmt.Sprintf("%d-Q%d", t.Year(), q)

	case ruleset.Years:
		start = time.Date(t.Year(), 1, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0)
		label = fmt.Sprintf("%d", t.Year())
	}

	return label, start, end
}

// isoWeekStart returns the Monday 00:00 of the given ISO (year, week).
func isoWeekStart(year, week int, loc *time.Location) time.Time {
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, loc)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // ISO: Sunday is day 7
	}
	week1Monday := jan4.AddDate(0, 0, -(weekday - 1))
	return week1Monday.AddDate(0, 0, (week-1)*7)
}
