package engine

import (
	"fmt"
	"strings"
)

// ParseRole parses user input to a Role.
// Supported: player, parent (plus a few obvious aliases).
func ParseRole(input string) (Role, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "player", "kid", "child":
		return RolePlayer, nil
	case "parent", "mum", "mom", "dad":
		return RoleParent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, input)
	}
}
