package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
)

// RecordVersion is written into every saved blob. Blobs without a version
// predate it and may still carry the legacy signedDates shape.
const RecordVersion = 2

// recordBlob is the stored JSON shape. Element types are left raw so each
// element can be validated on its own instead of failing the whole decode.
type recordBlob struct {
	Version      int               `json:"version,omitempty"`
	Acknowledged []json.RawMessage `json:"acknowledged"`
	SignedDates  []json.RawMessage `json:"signedDates"`
	CurrentRole  json.RawMessage   `json:"currentRole"`
}

type signedDateBlob struct {
	Date  string   `json:"date"`
	Roles []string `json:"roles"`
}

type savedBlob struct {
	Version      int              `json:"version"`
	Acknowledged []int            `json:"acknowledged"`
	SignedDates  []signedDateBlob `json:"signedDates"`
	CurrentRole  *string          `json:"currentRole"`
}

// RecordRepo loads and saves the oath record under KeyOathData.
type RecordRepo struct {
	kv  KV
	log *slog.Logger
}

func NewRecordRepo(kv KV, log *slog.Logger) *RecordRepo {
	if log == nil {
		log = slog.Default()
	}
	return &RecordRepo{kv: kv, log: log}
}

// Load returns the stored record normalized to the canonical shape. A missing
// or unparseable blob yields an empty record; only backend failures are errors.
func (r *RecordRepo) Load(ctx context.Context) (Record, error) {
	raw, ok, err := r.kv.Get(ctx, KeyOathData)
	if err != nil {
		return Record{}, fmt.Errorf("record load: %w", err)
	}
	if !ok {
		return Record{}, nil
	}
	rec, dropped, err := DecodeRecord([]byte(raw))
	if err != nil {
		r.log.Warn("discarding unreadable oath data", "error", err)
		return Record{}, nil
	}
	if dropped > 0 {
		r.log.Warn("dropped malformed signed entries", "count", dropped)
	}
	return rec, nil
}

func (r *RecordRepo) Save(ctx context.Context, rec Record) error {
	data, err := EncodeRecord(rec)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, KeyOathData, string(data)); err != nil {
		return fmt.Errorf("record save: %w", err)
	}
	return nil
}

// EncodeRecord serializes rec in the current structured shape.
func EncodeRecord(rec Record) ([]byte, error) {
	out := savedBlob{
		Version:      RecordVersion,
		Acknowledged: append([]int{}, rec.Acknowledged...),
		SignedDates:  make([]signedDateBlob, 0, len(rec.SignedDates)),
	}
	for _, sd := range rec.SignedDates {
		out.SignedDates = append(out.SignedDates, signedDateBlob{
			Date:  sd.Date,
			Roles: append([]string{}, sd.Roles...),
		})
	}
	if rec.CurrentRole != "" {
		role := rec.CurrentRole
		out.CurrentRole = &role
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

// DecodeRecord parses a stored blob of any known version. It returns the
// number of signed-date elements that were discarded as malformed.
func DecodeRecord(data []byte) (Record, int, error) {
	var blob recordBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return Record{}, 0, fmt.Errorf("decode record: %w", err)
	}

	var rec Record
	rec.CurrentRole = decodeRole(blob.CurrentRole)
	rec.Acknowledged = decodeAcknowledged(blob.Acknowledged)
	dates, dropped := decodeSignedDates(blob.SignedDates)
	rec.SignedDates = dates
	return rec, dropped, nil
}

func decodeRole(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	if !isKnownRole(s) {
		return ""
	}
	return s
}

func decodeAcknowledged(raws []json.RawMessage) []int {
	var out []int
	seen := map[int]bool{}
	for _, raw := range raws {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			continue
		}
		if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
			continue
		}
		i := int(f)
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	return out
}

// decodeSignedDates upgrades legacy string elements to Player entries, keeps
// well-formed structured elements, and merges repeated dates into the first
// entry seen for that date.
func decodeSignedDates(raws []json.RawMessage) ([]SignedDate, int) {
	var out []SignedDate
	byDate := map[string]int{}
	dropped := 0

	add := func(date string, roles []string) {
		if i, ok := byDate[date]; ok {
			out[i].Roles = mergeRoles(out[i].Roles, roles)
			return
		}
		byDate[date] = len(out)
		out = append(out, SignedDate{Date: date, Roles: mergeRoles(nil, roles)})
	}

	for _, raw := range raws {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 {
			dropped++
			continue
		}
		switch trimmed[0] {
		case '"':
			var date string
			if err := json.Unmarshal(trimmed, &date); err != nil || date == "" {
				dropped++
				continue
			}
			add(date, []string{RolePlayer})
		case '{':
			date, roles, ok := decodeStructuredEntry(trimmed)
			if !ok {
				dropped++
				continue
			}
			add(date, roles)
		default:
			dropped++
		}
	}
	return out, dropped
}

func decodeStructuredEntry(raw []byte) (string, []string, bool) {
	var entry struct {
		Date  json.RawMessage `json:"date"`
		Roles json.RawMessage `json:"roles"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return "", nil, false
	}
	var date string
	if err := json.Unmarshal(entry.Date, &date); err != nil || date == "" {
		return "", nil, false
	}
	roles := bytes.TrimSpace(entry.Roles)
	if len(roles) == 0 || roles[0] != '[' {
		return "", nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(roles, &items); err != nil {
		return "", nil, false
	}
	var known []string
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		if isKnownRole(s) {
			known = append(known, s)
		}
	}
	if len(known) == 0 {
		return "", nil, false
	}
	return date, known, true
}

func mergeRoles(into []string, roles []string) []string {
	for _, r := range roles {
		dup := false
		for _, have := range into {
			if have == r {
				dup = true
				break
			}
		}
		if !dup {
			into = append(into, r)
		}
	}
	return into
}
