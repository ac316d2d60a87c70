package services

import "github.com/inkpress/inkpress/models"

// Actor is the identity invoking an operation, built by the transport layer
// from verified credentials. A nil *Actor means the request is unauthenticated.
type Actor struct {
	ID    uint
	Role  string
	Name  string
	Email string
}

// IsAdmin reports whether the actor holds the admin role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == models.RoleAdmin
}

// CanModify decides whether the actor may edit or soft-delete the comment:
// the author may, and so may any admin. Creation is open to every
// authenticated actor and reads are public, so neither consults this policy.
func CanModify(actor *Actor, comment *models.Comment) bool {
	if actor == nil {
		return false
	}
	return actor.ID == comment.UserID || actor.IsAdmin()
}
