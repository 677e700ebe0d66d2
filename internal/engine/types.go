package engine

import "tennisoath/internal/storage"

type Role string

const (
	RolePlayer Role = storage.RolePlayer
	RoleParent Role = storage.RoleParent
)

func (r Role) IsValid() bool {
	switch r {
	case RolePlayer, RoleParent:
		return true
	default:
		return false
	}
}

// Roles lists every role in display order.
var Roles = []Role{RolePlayer, RoleParent}

type Question struct {
	Icon string
	Text string
}

// Visit classifies a calendar day by which roles signed it.
type Visit int

const (
	VisitNone Visit = iota
	VisitPlayer
	VisitParent
	VisitBoth
)

func (v Visit) String() string {
	switch v {
	case VisitPlayer:
		return "player"
	case VisitParent:
		return "parent"
	case VisitBoth:
		return "both"
	default:
		return "none"
	}
}

// SignedEntry is one day in the signed log.
type SignedEntry struct {
	Date  string
	Roles []Role
}

func (e SignedEntry) Has(r Role) bool {
	for _, have := range e.Roles {
		if have == r {
			return true
		}
	}
	return false
}

func (e SignedEntry) Visit() Visit {
	player, parent := e.Has(RolePlayer), e.Has(RoleParent)
	switch {
	case player && parent:
		return VisitBoth
	case parent:
		return VisitParent
	case player:
		return VisitPlayer
	default:
		return VisitNone
	}
}

// DateLayout is the signed-log date key format.
const DateLayout = "2006-01-02"
