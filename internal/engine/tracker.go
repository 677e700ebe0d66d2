package engine

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"tennisoath/internal/storage"
)

// RecordStore is the persistence the tracker mirrors every mutation to.
type RecordStore interface {
	Load(ctx context.Context) (storage.Record, error)
	Save(ctx context.Context, rec storage.Record) error
}

// Tracker owns the in-memory oath record and the calendar view month.
// It is not safe for concurrent use; there is one logical writer.
type Tracker struct {
	store RecordStore
	log   *slog.Logger
	now   func() time.Time

	role   Role
	acked  []int
	signed []SignedEntry

	// session identifies the current acknowledgment round. It rotates whenever
	// acknowledgments are reset so a deferred reset from an older round is ignored.
	session uuid.UUID
	view    time.Time
}

// NewTracker loads the stored record. A nil log uses slog.Default and a nil
// clock uses time.Now.
func NewTracker(ctx context.Context, store RecordStore, log *slog.Logger, now func() time.Time) (*Tracker, error) {
	if log == nil {
		log = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	rec, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	t := &Tracker{
		store:   store,
		log:     log,
		now:     now,
		session: uuid.New(),
	}
	t.applyRecord(rec)
	t.view = monthStart(t.now())
	return t, nil
}

func (t *Tracker) applyRecord(rec storage.Record) {
	role := Role(rec.CurrentRole)
	if !role.IsValid() {
		role = ""
	}
	t.role = role

	limit := role.QuestionCount()
	t.acked = nil
	for _, i := range rec.Acknowledged {
		if i >= 0 && i < limit && !slices.Contains(t.acked, i) {
			t.acked = append(t.acked, i)
		}
	}
	if dropped := len(rec.Acknowledged) - len(t.acked); dropped > 0 {
		t.log.Debug("dropped out-of-range acknowledgments", "count", dropped, "role", string(role))
	}

	t.signed = make([]SignedEntry, 0, len(rec.SignedDates))
	for _, sd := range rec.SignedDates {
		e := SignedEntry{Date: sd.Date}
		for _, r := range sd.Roles {
			if signer := Role(r); signer.IsValid() && !e.Has(signer) {
				e.Roles = append(e.Roles, signer)
			}
		}
		if len(e.Roles) > 0 {
			t.signed = append(t.signed, e)
		}
	}
}

func (t *Tracker) record() storage.Record {
	rec := storage.Record{
		Acknowledged: append([]int{}, t.acked...),
		SignedDates:  make([]storage.SignedDate, 0, len(t.signed)),
		CurrentRole:  string(t.role),
	}
	for _, e := range t.signed {
		sd := storage.SignedDate{Date: e.Date}
		for _, r := range e.Roles {
			sd.Roles = append(sd.Roles, string(r))
		}
		rec.SignedDates = append(rec.SignedDates, sd)
	}
	return rec
}

// persist is best-effort: the in-memory state stays authoritative for the
// session even when the write fails.
func (t *Tracker) persist(ctx context.Context) {
	if err := t.store.Save(ctx, t.record()); err != nil {
		t.log.Warn("failed to persist oath data", "error", err)
	}
}

func (t *Tracker) CurrentRole() (Role, bool) {
	return t.role, t.role != ""
}

// CurrentQuestions returns the active role's question set, or nil before a role is chosen.
func (t *Tracker) CurrentQuestions() []Question {
	return t.role.Questions()
}

// SelectRole establishes the role on first use. Selecting the active role again
// is a no-op; changing an established role goes through SwitchRole.
func (t *Tracker) SelectRole(ctx context.Context, role Role) ([]Question, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if t.role == role {
		return role.Questions(), nil
	}
	if t.role != "" {
		return nil, ErrRoleAlreadySelected
	}
	t.setRole(ctx, role)
	return role.Questions(), nil
}

// SwitchRole changes the active role from any state, clearing acknowledgments.
func (t *Tracker) SwitchRole(ctx context.Context, role Role) ([]Question, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if t.role == role {
		return role.Questions(), nil
	}
	t.setRole(ctx, role)
	return role.Questions(), nil
}

func (t *Tracker) setRole(ctx context.Context, role Role) {
	prev := t.role
	t.acked = nil
	t.role = role
	t.session = uuid.New()
	t.persist(ctx)
	t.log.Debug("role changed", "from", string(prev), "to", string(role))
}

// ToggleQuestion flips the acknowledgment of the question at index. It reports
// false, changing nothing, when no role is set or index is out of range.
func (t *Tracker) ToggleQuestion(ctx context.Context, index int) bool {
	if index < 0 || index >= t.role.QuestionCount() {
		return false
	}
	if i := slices.Index(t.acked, index); i >= 0 {
		t.acked = slices.Delete(t.acked, i, i+1)
	} else {
		t.acked = append(t.acked, index)
	}
	t.persist(ctx)
	return true
}

func (t *Tracker) IsAcknowledged(index int) bool {
	return slices.Contains(t.acked, index)
}

// Acknowledged returns the acknowledged indices in the order they were checked.
func (t *Tracker) Acknowledged() []int {
	return append([]int(nil), t.acked...)
}

// Progress reports acknowledged and total question counts for the active role.
func (t *Tracker) Progress() (done int, total int) {
	return len(t.acked), t.role.QuestionCount()
}

func (t *Tracker) IsReadyToSign() bool {
	total := t.role.QuestionCount()
	return total > 0 && len(t.acked) == total
}

type SignResult struct {
	Date string
	Role Role
	// Token must be handed back to ResetAfterSign.
	Token uuid.UUID
	// AlreadySigned is true when this role had already signed this date.
	AlreadySigned bool
}

// SignToday records today for the active role. It is rejected, with no state
// change, unless every question is acknowledged. Acknowledgments are left in
// place; the caller clears them with ResetAfterSign once feedback has shown.
func (t *Tracker) SignToday(ctx context.Context) (SignResult, bool) {
	if !t.IsReadyToSign() {
		return SignResult{}, false
	}
	date := t.now().Format(DateLayout)
	res := SignResult{Date: date, Role: t.role, Token: t.session}

	i := t.entryIndex(date)
	switch {
	case i < 0:
		t.signed = append(t.signed, SignedEntry{Date: date, Roles: []Role{t.role}})
	case t.signed[i].Has(t.role):
		res.AlreadySigned = true
	default:
		t.signed[i].Roles = append(t.signed[i].Roles, t.role)
	}
	t.persist(ctx)
	t.log.Debug("oath signed", "date", date, "role", string(t.role), "repeat", res.AlreadySigned)
	return res, true
}

// ResetAfterSign clears acknowledgments for the round identified by token.
// A token from a round that has since ended (role switch, earlier reset) is
// ignored and false is returned.
func (t *Tracker) ResetAfterSign(ctx context.Context, token uuid.UUID) bool {
	if token != t.session {
		return false
	}
	t.acked = nil
	t.session = uuid.New()
	t.persist(ctx)
	return true
}

func (t *Tracker) entryIndex(date string) int {
	for i := range t.signed {
		if t.signed[i].Date == date {
			return i
		}
	}
	return -1
}

// Entry returns the signed entry for date, if any.
func (t *Tracker) Entry(date string) (SignedEntry, bool) {
	i := t.entryIndex(date)
	if i < 0 {
		return SignedEntry{}, false
	}
	e := t.signed[i]
	e.Roles = append([]Role(nil), e.Roles...)
	return e, true
}

// SignedToday reports whether the active role has signed the current date.
func (t *Tracker) SignedToday() bool {
	e, ok := t.Entry(t.now().Format(DateLayout))
	return ok && e.Has(t.role)
}
