package engine

import (
	"fmt"
	"time"
)

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Day   int
	Date  string
	Visit Visit
	Today bool
}

// CalendarMonth is a Monday-first month grid. Leading is the number of blank
// cells before day 1.
type CalendarMonth struct {
	Year    int
	Month   time.Month
	Leading int
	Days    []CalendarDay
}

func (c CalendarMonth) Title() string {
	return fmt.Sprintf("%s %d", c.Month, c.Year)
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func dateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ViewMonth returns the first instant of the month being displayed.
func (t *Tracker) ViewMonth() time.Time {
	return t.view
}

// NavigateMonth moves the view by one month. Moves past the current real
// month are rejected and leave the view unchanged.
func (t *Tracker) NavigateMonth(direction int) bool {
	if direction != 1 && direction != -1 {
		return false
	}
	next := t.view.AddDate(0, direction, 0)
	if next.After(monthStart(t.now())) {
		return false
	}
	t.view = next
	return true
}

// IsPrevNavigable is false once the view reaches the month of the oldest
// signed date. With nothing signed the current month is the floor.
func (t *Tracker) IsPrevNavigable() bool {
	floor := monthStart(t.now())
	if oldest, ok := t.oldestSigned(); ok {
		floor = monthStart(oldest)
	}
	return t.view.After(floor)
}

func (t *Tracker) IsNextNavigable() bool {
	return !t.view.AddDate(0, 1, 0).After(monthStart(t.now()))
}

func (t *Tracker) oldestSigned() (time.Time, bool) {
	loc := t.now().Location()
	var oldest time.Time
	found := false
	for _, e := range t.signed {
		d, err := time.ParseInLocation(DateLayout, e.Date, loc)
		if err != nil {
			continue
		}
		if !found || d.Before(oldest) {
			oldest = d
			found = true
		}
	}
	return oldest, found
}

// EntriesForMonth maps every day of the month to the roles that signed it.
func (t *Tracker) EntriesForMonth(year int, month time.Month) map[int]Visit {
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.now().Location())
	n := daysIn(first.Year(), first.Month(), first.Location())
	out := make(map[int]Visit, n)
	for day := 1; day <= n; day++ {
		out[day] = VisitNone
		if e, ok := t.Entry(dateKey(first.Year(), first.Month(), day)); ok {
			out[day] = e.Visit()
		}
	}
	return out
}

// Calendar builds the grid for the current view month.
func (t *Tracker) Calendar() CalendarMonth {
	return t.CalendarFor(t.view.Year(), t.view.Month())
}

func (t *Tracker) CalendarFor(year int, month time.Month) CalendarMonth {
	now := t.now()
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	// time.Weekday has Sunday at 0; shift so Monday is column 0.
	leading := (int(first.Weekday()) + 6) % 7

	today := now.Format(DateLayout)
	visits := t.EntriesForMonth(first.Year(), first.Month())
	cal := CalendarMonth{Year: first.Year(), Month: first.Month(), Leading: leading}
	for day := 1; day <= len(visits); day++ {
		key := dateKey(first.Year(), first.Month(), day)
		cal.Days = append(cal.Days, CalendarDay{
			Day:   day,
			Date:  key,
			Visit: visits[day],
			Today: key == today,
		})
	}
	return cal
}
