package engine

import "errors"

var (
	ErrInvalidRole = errors.New("invalid role")
	// ErrRoleAlreadySelected is returned by SelectRole once a different role is
	// established; changing it goes through SwitchRole.
	ErrRoleAlreadySelected = errors.New("role already selected (use switch)")
	ErrNoRole              = errors.New("no role selected")
)
