package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPermission_CatalogMembers(t *testing.T) {
	for _, name := range []string{"ADMIN", "USER", "MANAGER"} {
		t.Run(name, func(t *testing.T) {
			p, err := LookupPermission(name)
			require.NoError(t, err)
			assert.Equal(t, name, p.String())
			assert.True(t, p.IsValid())
		})
	}
}

func TestLookupPermission_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown", input: "unknown"},
		{name: "lower case", input: "admin"},
		{name: "mixed case", input: "Manager"},
		{name: "empty", input: ""},
		{name: "trailing space", input: "USER "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LookupPermission(tt.input)
			assert.ErrorIs(t, err, ErrPermissionNotFound)
			assert.Empty(t, p)
			assert.False(t, errors.Is(err, ErrContractViolation))
		})
	}
}

func TestPermissions_ReturnsCopy(t *testing.T) {
	perms := Permissions()
	require.Equal(t, []Permission{PermissionAdmin, PermissionUser, PermissionManager}, perms)

	perms[0] = "MUTATED"
	assert.Equal(t, PermissionAdmin, Permissions()[0])
}

func TestPermission_DisplayName(t *testing.T) {
	assert.Equal(t, "Admin", PermissionAdmin.DisplayName())
	assert.Equal(t, "User", PermissionUser.DisplayName())
	assert.Equal(t, "Manager", PermissionManager.DisplayName())
}

func TestPermission_UnmarshalText(t *testing.T) {
	var p Permission
	require.NoError(t, p.UnmarshalText([]byte("MANAGER")))
	assert.Equal(t, PermissionManager, p)

	err := p.UnmarshalText([]byte("ROOT"))
	assert.ErrorIs(t, err, ErrPermissionNotFound)
	assert.Equal(t, PermissionManager, p, "failed unmarshal must not change the value")
}

func TestPermission_IsValid(t *testing.T) {
	assert.False(t, Permission("ROOT").IsValid())
	assert.False(t, Permission("").IsValid())
}
