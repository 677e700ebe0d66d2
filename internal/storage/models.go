package storage

// Wire values for roles. The engine owns the typed enum; storage only needs
// to know which strings are acceptable on load.
const (
	RolePlayer = "player"
	RoleParent = "parent"
)

func isKnownRole(s string) bool {
	switch s {
	case RolePlayer, RoleParent:
		return true
	default:
		return false
	}
}

// Record is the canonical in-memory shape of the persisted oath data.
// CurrentRole is empty when no role has been selected.
type Record struct {
	Acknowledged []int
	SignedDates  []SignedDate
	CurrentRole  string
}

type SignedDate struct {
	Date  string
	Roles []string
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

// Storage keys, shared by every KV backend.
const (
	KeyOathData = "oathData"
	KeyTheme    = "theme"
)
