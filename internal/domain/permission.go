package domain

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Permission is a role tag from a fixed, closed catalog.
type Permission string

// Catalog members.
const (
	PermissionAdmin   Permission = "ADMIN"
	PermissionUser    Permission = "USER"
	PermissionManager Permission = "MANAGER"
)

var catalog = [...]Permission{
	PermissionAdmin,
	PermissionUser,
	PermissionManager,
}

// Permissions returns every catalog member in declaration order.
func Permissions() []Permission {
	out := make([]Permission, len(catalog))
	copy(out, catalog[:])
	return out
}

// LookupPermission returns the catalog member whose name equals name.
// Matching is exact and case-sensitive. Unknown names fail with ErrPermissionNotFound.
func LookupPermission(name string) (Permission, error) {
	for _, p := range catalog {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("lookup %q: %w", name, ErrPermissionNotFound)
}

// IsValid checks if the permission is a catalog member.
func (p Permission) IsValid() bool {
	switch p {
	case PermissionAdmin, PermissionUser, PermissionManager:
		return true
	}
	return false
}

func (p Permission) String() string {
	return string(p)
}

// DisplayName returns a human-readable label, e.g. "Manager".
func (p Permission) DisplayName() string {
	// Casers keep state between calls and cannot be shared across goroutines.
	return cases.Title(language.English).String(string(p))
}

// UnmarshalText implements encoding.TextUnmarshaler using LookupPermission.
func (p *Permission) UnmarshalText(text []byte) error {
	found, err := LookupPermission(string(text))
	if err != nil {
		return err
	}
	*p = found
	return nil
}

// index returns the declaration position of p, or -1 for non-members.
func (p Permission) index() int {
	for i, c := range catalog {
		if c == p {
			return i
		}
	}
	return -1
}
