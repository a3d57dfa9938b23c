// Package access holds the pure authorization predicates. They never touch
// storage and never return errors; callers translate a false result into a
// forbidden response.
package access

import (
	"github.com/google/uuid"

	"media-review/internal/data/entity"
)

// Caller is the authenticated identity carried through a request. A nil
// Caller means the request is anonymous.
type Caller struct {
	ID          uuid.UUID
	Username    string
	Role        entity.UserRole
	IsSuperuser bool
}

func (c *Caller) isAdmin() bool {
	return c != nil && (c.Role == entity.RoleAdmin || c.IsSuperuser)
}

// CanWriteCollection decides create/delete access on a collection. Reads are
// routed without this check. adminOnly marks the catalog collections
// (categories, genres, titles, users) whose writes belong to admins.
func CanWriteCollection(c *Caller, adminOnly bool) bool {
	if c == nil {
		return false
	}
	if adminOnly {
		return c.isAdmin()
	}
	return true
}

// CanWriteObject decides mutation of a single review or comment: allowed for
// staff (admin, moderator) and for the object's author.
func CanWriteObject(c *Caller, authorID uuid.UUID) bool {
	if c == nil {
		return false
	}
	if c.isAdmin() || c.Role == entity.RoleModerator {
		return true
	}
	return c.ID == authorID
}

// CanChangeRole decides whether a self-service profile update may touch the
// role field. Only a superuser that is already admin may do that.
func CanChangeRole(c *Caller) bool {
	return c != nil && c.Role == entity.RoleAdmin && c.IsSuperuser
}
