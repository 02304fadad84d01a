package plan

import (
	"sort"
	"time"
)

// Calendar is the plant's ordered list of working days. An empty calendar
// degrades to a no-op: every lookup returns its input unchanged.
type Calendar struct {
	days []time.Time
}

func NewCalendar(days []time.Time) *Calendar {
	uniq := make(map[time.Time]struct{}, len(days))
	norm := make([]time.Time, 0, len(days))
	for _, d := range days {
		d = DateOnly(d)
		if _, ok := uniq[d]; ok {
			continue
		}
		uniq[d] = struct{}{}
		norm = append(norm, d)
	}
	sort.Slice(norm, func(i, j int) bool { return norm[i].Before(norm[j]) })
	return &Calendar{days: norm}
}

// DateOnly truncates a timestamp to a UTC calendar date. All engine dates
// are compared at day granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (c *Calendar) IsWorkday(d time.Time) bool {
	d = DateOnly(d)
	i := c.search(d)
	return i < len(c.days) && c.days[i].Equal(d)
}

// NearestWorkday snaps a date onto the calendar. Out-of-range dates clamp
// to the first/last known workday; ties between neighbours go to the
// earlier day.
func (c *Calendar) NearestWorkday(d time.Time) time.Time {
	d = DateOnly(d)
	if len(c.days) == 0 {
		return d
	}
	if !d.After(c.days[0]) {
		return c.days[0]
	}
	if !d.Before(c.days[len(c.days)-1]) {
		return c.days[len(c.days)-1]
	}

	i := c.search(d)
	before, after := c.days[i-1], c.days[i]
	if d.Sub(before) <= after.Sub(d) {
		return before
	}
	return after
}

// BackOffset snaps the date to its nearest workday and steps n workdays
// back, never before the first known workday.
func (c *Calendar) BackOffset(d time.Time, n int) time.Time {
	if len(c.days) == 0 {
		return DateOnly(d)
	}
	i := c.search(c.NearestWorkday(d))
	i -= n
	if i < 0 {
		i = 0
	}
	return c.days[i]
}

// search is the insertion point for d (first index with days[i] >= d).
func (c *Calendar) search(d time.Time) int {
	return sort.Search(len(c.days), func(i int) bool {
		return !c.days[i].Before(d)
	})
}
