package ancestry

import (
	"testing"

	"github.com/bissquit/rolechain/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds ids[0] -> ids[1] -> ... and returns the first user.
func chain(ids ...int) *domain.User {
	var u *domain.User
	for i := len(ids) - 1; i >= 0; i-- {
		u = domain.NewUser(ids[i], domain.WithParent(u))
	}
	return u
}

func TestGrandparentID(t *testing.T) {
	tests := []struct {
		name   string
		user   *domain.User
		wantID int
		wantOK bool
	}{
		{name: "absent user", user: nil},
		{name: "no parent", user: chain(1)},
		{name: "parent without parent", user: chain(1, 2)},
		{name: "grandparent present", user: chain(1, 2, 7), wantID: 7, wantOK: true},
		{name: "deeper chain stops at two hops", user: chain(1, 2, 3, 4), wantID: 3, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GrandparentID(tt.user)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestAncestor(t *testing.T) {
	u := chain(10, 20, 30)

	tests := []struct {
		name   string
		user   *domain.User
		depth  int
		wantID int
		wantOK bool
	}{
		{name: "depth zero is self", user: u, depth: 0, wantID: 10, wantOK: true},
		{name: "one hop", user: u, depth: 1, wantID: 20, wantOK: true},
		{name: "two hops", user: u, depth: 2, wantID: 30, wantOK: true},
		{name: "past the root", user: u, depth: 3},
		{name: "far past the root", user: u, depth: 100},
		{name: "negative depth", user: u, depth: -1},
		{name: "nil user", user: nil, depth: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Ancestor(tt.user, tt.depth)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.wantID, got.ID())

			id, ok := AncestorID(tt.user, tt.depth)
			assert.True(t, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestAncestorID_MatchesGrandparentID(t *testing.T) {
	for _, u := range []*domain.User{nil, chain(1), chain(1, 2), chain(1, 2, 3)} {
		wantID, wantOK := GrandparentID(u)
		gotID, gotOK := AncestorID(u, 2)
		assert.Equal(t, wantOK, gotOK)
		assert.Equal(t, wantID, gotID)
	}
}

func TestLineage(t *testing.T) {
	assert.Empty(t, Lineage(nil))

	got := Lineage(chain(1, 2, 3))
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].ID())
	assert.Equal(t, 2, got[1].ID())
	assert.Equal(t, 3, got[2].ID())
}

func TestRoot(t *testing.T) {
	root, ok := Root(chain(1, 2, 3))
	require.True(t, ok)
	assert.Equal(t, 3, root.ID())

	single := chain(5)
	root, ok = Root(single)
	require.True(t, ok)
	assert.Same(t, single, root)

	root, ok = Root(nil)
	assert.False(t, ok)
	assert.Nil(t, root)
}
