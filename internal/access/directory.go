// Package access answers permission questions about users.
package access

import (
	"fmt"

	"github.com/bissquit/rolechain/internal/ancestry"
	"github.com/bissquit/rolechain/internal/domain"
)

// IsAdmin reports whether u holds the ADMIN permission. A nil user is not an admin.
func IsAdmin(u *domain.User) bool {
	return u != nil && u.HasPermission(domain.PermissionAdmin)
}

// Directory is an immutable index of users by id.
type Directory struct {
	users map[int]*domain.User
}

// NewDirectory indexes users by id. Ancestors are not indexed implicitly.
func NewDirectory(users ...*domain.User) (*Directory, error) {
	index := make(map[int]*domain.User, len(users))
	for i, u := range users {
		if u == nil {
			return nil, fmt.Errorf("index user #%d: %w", i, ErrNilUser)
		}
		if _, exists := index[u.ID()]; exists {
			return nil, fmt.Errorf("index user id=%d: %w", u.ID(), ErrDuplicateUser)
		}
		index[u.ID()] = u
	}
	return &Directory{users: index}, nil
}

// Len returns the number of indexed users.
func (d *Directory) Len() int {
	return len(d.users)
}

// User returns the user with the given id, if indexed.
func (d *Directory) User(id int) (*domain.User, bool) {
	u, ok := d.users[id]
	return u, ok
}

// PermissionsByUserID returns the permissions of the user with the given id.
func (d *Directory) PermissionsByUserID(id int) ([]domain.Permission, error) {
	u, ok := d.User(id)
	if !ok {
		return nil, fmt.Errorf("user with id=%d not found: %w", id, ErrUserNotFound)
	}
	return u.Permissions(), nil
}

// PermissionsOrEmpty is PermissionsByUserID with an empty result for unknown ids.
func (d *Directory) PermissionsOrEmpty(id int) []domain.Permission {
	perms, err := d.PermissionsByUserID(id)
	if err != nil {
		return []domain.Permission{}
	}
	return perms
}

// IsAdmin reports whether the user with the given id is an admin.
// Unknown ids are not admins.
func (d *Directory) IsAdmin(id int) bool {
	u, _ := d.User(id)
	return IsAdmin(u)
}

// GrandparentID looks the user up and returns its grandparent id.
func (d *Directory) GrandparentID(id int) (int, bool) {
	u, _ := d.User(id)
	return ancestry.GrandparentID(u)
}
