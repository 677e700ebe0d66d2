package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tennisoath/internal/storage"
)

type memStore struct {
	rec     storage.Record
	saves   int
	saveErr error
}

func (m *memStore) Load(context.Context) (storage.Record, error) { return m.rec, nil }

func (m *memStore) Save(_ context.Context, rec storage.Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.rec = rec
	return nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func at(s string) *fakeClock {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return &fakeClock{t: t}
}

func newTestTracker(t *testing.T, rec storage.Record, clock *fakeClock) (*Tracker, *memStore) {
	t.Helper()
	store := &memStore{rec: rec}
	tr, err := NewTracker(context.Background(), store, nil, clock.Now)
	require.NoError(t, err)
	return tr, store
}

func signedOn(dates ...string) storage.Record {
	var rec storage.Record
	for _, d := range dates {
		rec.SignedDates = append(rec.SignedDates, storage.SignedDate{Date: d, Roles: []string{storage.RolePlayer}})
	}
	return rec
}

func ackAll(t *testing.T, tr *Tracker) {
	t.Helper()
	ctx := context.Background()
	for i := range tr.CurrentQuestions() {
		if !tr.IsAcknowledged(i) {
			require.True(t, tr.ToggleQuestion(ctx, i))
		}
	}
}

func TestQuestionSets(t *testing.T) {
	for _, r := range Roles {
		assert.Len(t, r.Questions(), 12, "role=%s", r)
		assert.Equal(t, len(r.Questions()), r.QuestionCount())
		assert.NotEmpty(t, r.Header())
		assert.NotEmpty(t, r.Badge())
	}
	assert.Nil(t, Role("coach").Questions())
	assert.Zero(t, Role("").QuestionCount())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Parent ")
	require.NoError(t, err)
	assert.Equal(t, RoleParent, r)

	r, err = ParseRole("player")
	require.NoError(t, err)
	assert.Equal(t, RolePlayer, r)

	_, err = ParseRole("coach")
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestSelectRole(t *testing.T) {
	ctx := context.Background()
	tr, store := newTestTracker(t, storage.Record{}, at("2024-03-10 09:00"))

	_, ok := tr.CurrentRole()
	assert.False(t, ok)
	assert.False(t, tr.ToggleQuestion(ctx, 0), "toggle needs a role")

	qs, err := tr.SelectRole(ctx, RolePlayer)
	require.NoError(t, err)
	assert.Len(t, qs, 12)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, storage.RolePlayer, store.rec.CurrentRole)

	// Same role: no mutation, no persist.
	_, err = tr.SelectRole(ctx, RolePlayer)
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)

	_, err = tr.SelectRole(ctx, RoleParent)
	require.ErrorIs(t, err, ErrRoleAlreadySelected)

	_, err = tr.SelectRole(ctx, Role("coach"))
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestSwitchRoleSameRoleIsNoop(t *testing.T) {
	ctx := context.Background()
	tr, store := newTestTracker(t, storage.Record{CurrentRole: storage.RolePlayer, Acknowledged: []int{1, 2}}, at("2024-03-10 09:00"))

	_, err := tr.SwitchRole(ctx, RolePlayer)
	require.NoError(t, err)
	assert.Equal(t, 0, store.saves)
	assert.Equal(t, []int{1, 2}, tr.Acknowledged())
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, storage.Record{CurrentRole: storage.RoleParent}, at("2024-03-10 09:00"))

	require.True(t, tr.ToggleQuestion(ctx, 4))
	require.True(t, tr.ToggleQuestion(ctx, 7))
	before := tr.Acknowledged()

	for _, i := range []int{0, 4, 11} {
		require.True(t, tr.ToggleQuestion(ctx, i))
		require.True(t, tr.ToggleQuestion(ctx, i))
		assert.ElementsMatch(t, before, tr.Acknowledged(), "index %d", i)
	}

	assert.False(t, tr.ToggleQuestion(ctx, -1))
	assert.False(t, tr.ToggleQuestion(ctx, 12))
	assert.ElementsMatch(t, before, tr.Acknowledged())
}

func TestReadyToSignRequiresEveryQuestion(t *testing.T) {
	ctx := context.Background()
	for _, role := range Roles {
		tr, _ := newTestTracker(t, storage.Record{CurrentRole: string(role)}, at("2024-03-10 09:00"))
		n := role.QuestionCount()
		// Reverse order: completeness matters, not order.
		for i := n - 1; i >= 0; i-- {
			assert.False(t, tr.IsReadyToSign(), "role=%s acked=%d", role, n-1-i)
			require.True(t, tr.ToggleQuestion(ctx, i))
		}
		assert.True(t, tr.IsReadyToSign(), "role=%s", role)
		done, total := tr.Progress()
		assert.Equal(t, n, done)
		assert.Equal(t, n, total)
	}
}

func TestSignTodayRejectedWhenIncomplete(t *testing.T) {
	ctx := context.Background()
	tr, store := newTestTracker(t, storage.Record{CurrentRole: storage.RolePlayer, Acknowledged: []int{0, 1, 2}}, at("2024-03-10 09:00"))

	_, ok := tr.SignToday(ctx)
	assert.False(t, ok)
	assert.Equal(t, 0, store.saves)
	assert.Zero(t, tr.TotalSigns())
	assert.Equal(t, []int{0, 1, 2}, tr.Acknowledged())
}

func TestSignTodayIsIdempotentPerRole(t *testing.T) {
	ctx := context.Background()
	tr, store := newTestTracker(t, storage.Record{CurrentRole: storage.RolePlayer}, at("2024-03-10 21:30"))
	ackAll(t, tr)

	res, ok := tr.SignToday(ctx)
	require.True(t, ok)
	assert.Equal(t, "2024-03-10", res.Date)
	assert.Equal(t, RolePlayer, res.Role)
	assert.False(t, res.AlreadySigned)
	assert.True(t, tr.SignedToday())

	// Acknowledgments survive until the deferred reset runs.
	assert.True(t, tr.IsReadyToSign())

	res2, ok := tr.SignToday(ctx)
	require.True(t, ok)
	assert.True(t, res2.AlreadySigned)

	require.Len(t, store.rec.SignedDates, 1)
	assert.Equal(t, []string{storage.RolePlayer}, store.rec.SignedDates[0].Roles)
	assert.Equal(t, 1, tr.TotalSigns())
}

func TestSignTodayBothRolesShareEntry(t *testing.T) {
	ctx := context.Background()
	tr, store := newTestTracker(t, storage.Record{CurrentRole: storage.RolePlayer}, at("2024-03-10 09:00"))
	ackAll(t, tr)
	_, ok := tr.SignToday(ctx)
	require.True(t, ok)

	_, err := tr.SwitchRole(ctx, RoleParent)
	require.NoError(t, err)
	ackAll(t, tr)
	_, ok = tr.SignToday(ctx)
	require.True(t, ok)

	require.Len(t, store.rec.SignedDates, 1)
	assert.Equal(t, []string{storage.RolePlayer, storage.RoleParent}, store.rec.SignedDates[0].Roles)
	assert.Equal(t, 2, tr.TotalSigns())
	assert.Equal(t, VisitBoth, tr.EntriesForMonth(2024, time.March)[10])
}

func TestResetAfterSign(t *testing.T) {
	ctx := context.Background()
	tr, store := newTestTracker(t, storage.Record{CurrentRole: storage.RolePlayer}, at("2024-03-10 09:00"))
	ackAll(t, tr)

	res, ok := tr.SignToday(ctx)
	require.True(t, ok)

	assert.True(t, tr.ResetAfterSign(ctx, res.Token))
	assert.Empty(t, tr.Acknowledged())
	assert.Empty(t, store.rec.Acknowledged)

	// A second reset for the same round is stale.
	require.True(t, tr.ToggleQuestion(ctx, 3))
	assert.False(t, tr.ResetAfterSign(ctx, res.Token))
	assert.Equal(t, []int{3}, tr.Acknowledged())
}

func TestStaleResetAfterRoleSwitchKeepsNewAcknowledgments(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, storage.Record{CurrentRole: storage.RolePlayer}, at("2024-03-10 09:00"))
	ackAll(t, tr)
	res, ok := tr.SignToday(ctx)
	require.True(t, ok)

	_, err := tr.SwitchRole(ctx, RoleParent)
	require.NoError(t, err)
	require.True(t, tr.ToggleQuestion(ctx, 0))
	require.True(t, tr.ToggleQuestion(ctx, 5))

	assert.False(t, tr.ResetAfterSign(ctx, res.Token))
	assert.Equal(t, []int{0, 5}, tr.Acknowledged())
}

func TestRoleSwitchClearsAndDoesNotRestore(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, storage.Record{CurrentRole: storage.RolePlayer}, at("2024-03-10 09:00"))
	for _, i := range []int{0, 1, 2} {
		require.True(t, tr.ToggleQuestion(ctx, i))
	}

	_, err := tr.SwitchRole(ctx, RoleParent)
	require.NoError(t, err)
	assert.Empty(t, tr.Acknowledged())
	role, _ := tr.CurrentRole()
	assert.Equal(t, RoleParent, role)

	_, err = tr.SwitchRole(ctx, RolePlayer)
	require.NoError(t, err)
	assert.Empty(t, tr.Acknowledged())
}

func TestLoadDropsOutOfRangeAcknowledgments(t *testing.T) {
	tr, _ := newTestTracker(t, storage.Record{CurrentRole: storage.RolePlayer, Acknowledged: []int{0, 11, 12, 40}}, at("2024-03-10 09:00"))
	assert.Equal(t, []int{0, 11}, tr.Acknowledged())

	tr, _ = newTestTracker(t, storage.Record{Acknowledged: []int{0, 1}}, at("2024-03-10 09:00"))
	assert.Empty(t, tr.Acknowledged(), "no role, no acknowledgments")
}

func TestSaveFailureKeepsInMemoryState(t *testing.T) {
	ctx := context.Background()
	tr, store := newTestTracker(t, storage.Record{CurrentRole: storage.RolePlayer}, at("2024-03-10 09:00"))
	store.saveErr = errors.New("quota exceeded")

	ackAll(t, tr)
	_, ok := tr.SignToday(ctx)
	require.True(t, ok)
	assert.Equal(t, 1, tr.TotalSigns())
	assert.Equal(t, 1, tr.CalculateStreak())
}

func TestCalculateStreak(t *testing.T) {
	clock := at("2024-03-20 12:00")

	tr, _ := newTestTracker(t, storage.Record{}, clock)
	assert.Equal(t, 0, tr.CalculateStreak())

	tr, _ = newTestTracker(t, signedOn("2024-03-01", "2024-03-02", "2024-03-03"), clock)
	assert.Equal(t, 3, tr.CalculateStreak(), "anchored at most recent date, not today")

	tr, _ = newTestTracker(t, signedOn("2024-02-25", "2024-03-01", "2024-03-02", "2024-03-03"), clock)
	assert.Equal(t, 3, tr.CalculateStreak())

	tr, _ = newTestTracker(t, signedOn("2024-03-01", "2024-03-03"), clock)
	assert.Equal(t, 1, tr.CalculateStreak())

	tr, _ = newTestTracker(t, signedOn("2024-03-05"), clock)
	assert.Equal(t, 1, tr.CalculateStreak())

	// Insertion order and month boundaries do not matter.
	tr, _ = newTestTracker(t, signedOn("2024-03-01", "2024-02-28", "2024-02-29"), clock)
	assert.Equal(t, 3, tr.CalculateStreak())
}

func TestCalculateStreakCountsAnyRole(t *testing.T) {
	rec := storage.Record{SignedDates: []storage.SignedDate{
		{Date: "2024-03-01", Roles: []string{storage.RoleParent}},
		{Date: "2024-03-02", Roles: []string{storage.RolePlayer}},
		{Date: "2024-03-03", Roles: []string{storage.RolePlayer, storage.RoleParent}},
	}}
	tr, _ := newTestTracker(t, rec, at("2024-03-03 08:00"))
	assert.Equal(t, 3, tr.CalculateStreak())
	assert.Equal(t, 4, tr.TotalSigns())
}

func TestWeekSigns(t *testing.T) {
	rec := storage.Record{SignedDates: []storage.SignedDate{
		{Date: "2024-03-10", Roles: []string{storage.RolePlayer, storage.RoleParent}},
		{Date: "2024-03-04", Roles: []string{storage.RolePlayer}},
		{Date: "2024-03-03", Roles: []string{storage.RoleParent}},
		{Date: "2024-02-20", Roles: []string{storage.RolePlayer}},
	}}
	tr, _ := newTestTracker(t, rec, at("2024-03-10 15:00"))
	assert.Equal(t, 3, tr.WeekSigns())
	assert.Equal(t, 5, tr.TotalSigns())
}

func TestNavigateMonth(t *testing.T) {
	tr, _ := newTestTracker(t, signedOn("2024-01-15"), at("2024-03-10 09:00"))

	start := tr.ViewMonth()
	assert.Equal(t, time.March, start.Month())
	assert.False(t, tr.IsNextNavigable())
	assert.False(t, tr.NavigateMonth(+1))
	assert.Equal(t, start, tr.ViewMonth())

	assert.True(t, tr.IsPrevNavigable())
	require.True(t, tr.NavigateMonth(-1))
	require.True(t, tr.NavigateMonth(-1))
	assert.Equal(t, time.January, tr.ViewMonth().Month())
	assert.False(t, tr.IsPrevNavigable(), "at the oldest signed month")
	assert.True(t, tr.IsNextNavigable())

	require.True(t, tr.NavigateMonth(+1))
	assert.Equal(t, time.February, tr.ViewMonth().Month())

	assert.False(t, tr.NavigateMonth(0))
	assert.False(t, tr.NavigateMonth(2))
}

func TestPrevNavigableWithoutSignedDates(t *testing.T) {
	tr, _ := newTestTracker(t, storage.Record{}, at("2024-03-10 09:00"))
	assert.False(t, tr.IsPrevNavigable())
	assert.True(t, tr.NavigateMonth(-1), "navigation itself is only bounded above")
}

func TestNavigateAcrossYear(t *testing.T) {
	tr, _ := newTestTracker(t, signedOn("2023-11-02"), at("2024-01-31 09:00"))
	require.True(t, tr.NavigateMonth(-1))
	assert.Equal(t, 2023, tr.ViewMonth().Year())
	assert.Equal(t, time.December, tr.ViewMonth().Month())
}

func TestEntriesForMonth(t *testing.T) {
	rec := storage.Record{SignedDates: []storage.SignedDate{
		{Date: "2024-02-01", Roles: []string{storage.RolePlayer}},
		{Date: "2024-02-14", Roles: []string{storage.RoleParent}},
		{Date: "2024-02-29", Roles: []string{storage.RoleParent, storage.RolePlayer}},
		{Date: "2024-03-01", Roles: []string{storage.RolePlayer}},
	}}
	tr, _ := newTestTracker(t, rec, at("2024-03-10 09:00"))

	feb := tr.EntriesForMonth(2024, time.February)
	assert.Len(t, feb, 29)
	assert.Equal(t, VisitPlayer, feb[1])
	assert.Equal(t, VisitParent, feb[14])
	assert.Equal(t, VisitBoth, feb[29])
	assert.Equal(t, VisitNone, feb[2])
}

func TestCalendarGrid(t *testing.T) {
	tr, _ := newTestTracker(t, signedOn("2024-03-09"), at("2024-03-10 09:00"))
	cal := tr.Calendar()

	assert.Equal(t, "March 2024", cal.Title())
	assert.Equal(t, 4, cal.Leading, "2024-03-01 is a Friday")
	require.Len(t, cal.Days, 31)
	assert.Equal(t, VisitPlayer, cal.Days[8].Visit)
	assert.True(t, cal.Days[9].Today)
	assert.False(t, cal.Days[8].Today)
}

func TestTrackerWithRecordRepo(t *testing.T) {
	ctx := context.Background()
	kv, err := storage.NewSQLiteKV(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set(ctx, storage.KeyOathData, `{"acknowledged":[],"signedDates":["2024-03-08","2024-03-09"],"currentRole":"player"}`))

	clock := at("2024-03-10 18:00")
	tr, err := NewTracker(ctx, storage.NewRecordRepo(kv, nil), nil, clock.Now)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.CalculateStreak())

	ackAll(t, tr)
	res, ok := tr.SignToday(ctx)
	require.True(t, ok)
	require.True(t, tr.ResetAfterSign(ctx, res.Token))

	reloaded, err := NewTracker(ctx, storage.NewRecordRepo(kv, nil), nil, clock.Now)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.CalculateStreak())
	assert.Equal(t, 3, reloaded.TotalSigns())
	assert.Empty(t, reloaded.Acknowledged())
	role, ok := reloaded.CurrentRole()
	assert.True(t, ok)
	assert.Equal(t, RolePlayer, role)
}
