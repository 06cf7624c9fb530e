package domain

import "github.com/google/uuid"

type OwnerScope string

const (
	ScopeGlobal OwnerScope = "global"
	ScopeUser   OwnerScope = "user"
)

// Scoped is implemented by catalog rows that are either shared or owned by one user.
type Scoped interface {
	Scope() OwnerScope
	Owner() *uuid.UUID
}

// IsVisible reports whether a catalog row can be seen by the requesting user:
// global rows are visible to everyone, user rows only to their owner.
func IsVisible(entry Scoped, userID uuid.UUID) bool {
	if entry.Scope() == ScopeGlobal {
		return true
	}
	owner := entry.Owner()
	return owner != nil && *owner == userID
}

// FilterVisible keeps the entries IsVisible accepts, preserving order.
func FilterVisible[T Scoped](entries []T, userID uuid.UUID) []T {
	visible := make([]T, 0, len(entries))
	for _, e := range entries {
		if IsVisible(e, userID) {
			visible = append(visible, e)
		}
	}
	return visible
}
