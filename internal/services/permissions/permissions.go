package permissions

import (
	"github.com/MaximJrr/drf-movies/internal/domain/models"
)

type Action int

const (
	ActionRead Action = iota
	ActionWrite
)

// Rule decides whether the caller may perform an action on a resource owned
// by ownerID. Rules are pure: same inputs, same answer, no side effects.
// Callers that own no resource pass NoOwner.
type Rule func(caller *models.User, action Action, ownerID int64) bool

const NoOwner int64 = 0

// SuperuserOrReadOnly allows reads for everyone, writes for superusers only.
func SuperuserOrReadOnly(caller *models.User, action Action, _ int64) bool {
	if action == ActionRead {
		return true
	}
	return !caller.IsAnonymous() && caller.IsSuperuser
}

// OwnerOrAdmin allows an authenticated caller that either owns the resource
// or is a superuser.
func OwnerOrAdmin(caller *models.User, _ Action, ownerID int64) bool {
	if caller.IsAnonymous() {
		return false
	}
	return caller.IsSuperuser || caller.ID == ownerID
}

// AuthenticatedOnly allows any authenticated caller.
func AuthenticatedOnly(caller *models.User, _ Action, _ int64) bool {
	return !caller.IsAnonymous()
}

// AdminOnly allows superusers, reads included.
func AdminOnly(caller *models.User, _ Action, _ int64) bool {
	return !caller.IsAnonymous() && caller.IsSuperuser
}
