package auth

import "errors"

var ErrNotOwner = errors.New("actor does not own this resource")

// IsOwner reports whether actorID is the stored owner of a resource.
// Comparison is exact; an empty actor never owns anything.
func IsOwner(ownerID, actorID string) bool {
	return actorID != "" && ownerID == actorID
}

// RequireOwner returns ErrNotOwner unless IsOwner holds.
func RequireOwner(ownerID, actorID string) error {
	if !IsOwner(ownerID, actorID) {
		return ErrNotOwner
	}
	return nil
}
