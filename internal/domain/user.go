package domain

import (
	"encoding/binary"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// User is an immutable value holding an id, a permission set and an optional parent.
// The parent link is non-owning. A parent must exist before its child is built, so
// ancestry chains are always finite.
type User struct {
	id          int
	permissions []Permission // sorted, no duplicates
	parent      *User
}

type userBuilder struct {
	permissions []Permission
	parent      *User
}

// UserOption configures a User under construction.
type UserOption func(*userBuilder)

// WithPermissions adds permissions to the user. Duplicates collapse.
func WithPermissions(perms ...Permission) UserOption {
	return func(b *userBuilder) {
		b.permissions = append(b.permissions, perms...)
	}
}

// WithParent sets the parent link. A nil parent means no further ancestor.
func WithParent(parent *User) UserOption {
	return func(b *userBuilder) {
		b.parent = parent
	}
}

// NewUser builds a User. The result is never mutated afterwards.
func NewUser(id int, opts ...UserOption) *User {
	var b userBuilder
	for _, opt := range opts {
		opt(&b)
	}
	return &User{
		id:          id,
		permissions: normalizePermissions(b.permissions),
		parent:      b.parent,
	}
}

// ID returns the user identifier. Uniqueness is not enforced.
func (u *User) ID() int {
	return u.id
}

// Permissions returns a copy of the permission set in catalog order.
// The result is empty, never nil.
func (u *User) Permissions() []Permission {
	out := make([]Permission, len(u.permissions))
	copy(out, u.permissions)
	return out
}

// HasPermission reports whether p is in the permission set.
func (u *User) HasPermission(p Permission) bool {
	return slices.Contains(u.permissions, p)
}

// Parent returns the parent user, if any.
func (u *User) Parent() (*User, bool) {
	if u.parent == nil {
		return nil, false
	}
	return u.parent, true
}

// Equal compares users field by field, recursing into the parent chain.
// Two nil users are equal.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	if u == other {
		return true
	}
	if u.id != other.id || !slices.Equal(u.permissions, other.permissions) {
		return false
	}
	return u.parent.Equal(other.parent)
}

// Hash returns a hash consistent with Equal.
func (u *User) Hash() uint64 {
	if u == nil {
		return 0
	}

	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(u.id))
	_, _ = h.Write(buf[:])
	for _, p := range u.permissions {
		_, _ = h.WriteString(string(p))
		_, _ = h.Write([]byte{0})
	}
	binary.LittleEndian.PutUint64(buf[:], u.parent.Hash())
	_, _ = h.Write(buf[:])

	return h.Sum64()
}

// String formats the user as User{id=1 permissions=[ADMIN] parent=2}.
func (u *User) String() string {
	if u == nil {
		return "User{<nil>}"
	}

	names := make([]string, len(u.permissions))
	for i, p := range u.permissions {
		names[i] = string(p)
	}

	var b strings.Builder
	b.WriteString("User{id=")
	b.WriteString(strconv.Itoa(u.id))
	b.WriteString(" permissions=[")
	b.WriteString(strings.Join(names, " "))
	b.WriteString("] parent=")
	if u.parent == nil {
		b.WriteString("<none>")
	} else {
		b.WriteString(strconv.Itoa(u.parent.id))
	}
	b.WriteString("}")
	return b.String()
}

func normalizePermissions(perms []Permission) []Permission {
	out := make([]Permission, 0, len(perms))
	for _, p := range perms {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, comparePermissions)
	return out
}

// comparePermissions orders catalog members by declaration, then anything else by name.
func comparePermissions(a, b Permission) int {
	ai, bi := a.index(), b.index()
	switch {
	case ai >= 0 && bi >= 0:
		return ai - bi
	case ai >= 0:
		return -1
	case bi >= 0:
		return 1
	}
	return strings.Compare(string(a), string(b))
}
