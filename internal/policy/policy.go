// Package policy holds the single authorization rule of the application:
// a deal and everything hanging off it (attachments, history) is manageable
// by its owner and by admins, nobody else.
package policy

import (
	"github.com/deal_management/internal/models"
)

// Actor is the authenticated identity attached to every operation. It is
// built from the JWT claims by the HTTP layer and passed explicitly, there is
// no ambient "current user".
type Actor struct {
	ID       uint
	Username string
	Role     models.Role
	Email    string
}

// CanManage reports whether the actor may read, mutate or delete a resource
// owned by ownerID.
func CanManage(actor Actor, ownerID uint) bool {
	return actor.Role.IsAdmin() || actor.ID == ownerID
}
