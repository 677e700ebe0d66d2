package engine

import (
	"sort"
	"time"
)

// WeekWindow is subtracted from the wall clock to find the start of the
// weekSigns window. It is a fixed duration, not seven calendar days.
const WeekWindow = 7 * 24 * time.Hour

// CalculateStreak counts consecutive calendar days ending at the most recent
// signed date (not necessarily today). Any role signing a day counts.
func (t *Tracker) CalculateStreak() int {
	if len(t.signed) == 0 {
		return 0
	}
	loc := t.now().Location()

	seen := map[string]bool{}
	var days []time.Time
	for _, e := range t.signed {
		if seen[e.Date] {
			continue
		}
		seen[e.Date] = true
		d, err := time.ParseInLocation(DateLayout, e.Date, loc)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	expect := days[0].AddDate(0, 0, -1)
	for _, d := range days[1:] {
		if !sameDay(d, expect) {
			break
		}
		streak++
		expect = expect.AddDate(0, 0, -1)
	}
	return streak
}

// TotalSigns counts role-day pairs: a day signed by both roles counts twice.
func (t *Tracker) TotalSigns() int {
	n := 0
	for _, e := range t.signed {
		n += len(e.Roles)
	}
	return n
}

// WeekSigns counts role-day pairs whose date, taken as local midnight, falls
// in [now-WeekWindow, now].
func (t *Tracker) WeekSigns() int {
	now := t.now()
	from := now.Add(-WeekWindow)
	n := 0
	for _, e := range t.signed {
		d, err := time.ParseInLocation(DateLayout, e.Date, now.Location())
		if err != nil {
			continue
		}
		if d.Before(from) || d.After(now) {
			continue
		}
		n += len(e.Roles)
	}
	return n
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
