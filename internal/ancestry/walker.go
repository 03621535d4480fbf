// Package ancestry walks the parent links of domain users.
//
// Missing ancestors are a normal outcome and are reported as absent (ok == false),
// never as errors.
package ancestry

import "github.com/bissquit/rolechain/internal/domain"

// step advances one link. It short-circuits: an absent input stays absent.
func step(u *domain.User, ok bool) (*domain.User, bool) {
	if !ok || u == nil {
		return nil, false
	}
	return u.Parent()
}

// GrandparentID returns the id of u's parent's parent.
// The result is absent when u is nil or either link is missing.
func GrandparentID(u *domain.User) (int, bool) {
	return id(step(step(u, u != nil)))
}

// Ancestor follows the parent link depth times.
// Depth 0 is u itself. Negative depth is absent.
func Ancestor(u *domain.User, depth int) (*domain.User, bool) {
	if u == nil || depth < 0 {
		return nil, false
	}

	cur := u
	for i := 0; i < depth; i++ {
		parent, ok := cur.Parent()
		if !ok {
			return nil, false
		}
		cur = parent
	}
	return cur, true
}

// AncestorID is Ancestor projected to the id.
func AncestorID(u *domain.User, depth int) (int, bool) {
	return id(Ancestor(u, depth))
}

// Lineage returns u followed by every ancestor, nearest first. Lineage of nil is empty.
func Lineage(u *domain.User) []*domain.User {
	var chain []*domain.User
	for cur, ok := u, u != nil; ok; cur, ok = cur.Parent() {
		chain = append(chain, cur)
	}
	return chain
}

// Root returns the most distant ancestor of u, or u itself when it has no parent.
func Root(u *domain.User) (*domain.User, bool) {
	chain := Lineage(u)
	if len(chain) == 0 {
		return nil, false
	}
	return chain[len(chain)-1], true
}

func id(u *domain.User, ok bool) (int, bool) {
	if !ok {
		return 0, false
	}
	return u.ID(), true
}
