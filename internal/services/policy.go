package services

import "blogapi/internal/models"

// Owned is any resource with a single owning user.
type Owned interface {
	OwnerID() uint
}

// CanModify reports whether actor may change or remove resource.
func CanModify(actor *models.User, resource Owned) bool {
	return actor != nil && resource != nil && actor.ID == resource.OwnerID()
}
