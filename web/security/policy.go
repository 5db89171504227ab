// Package security holds the authorization policy as plain predicates over
// the caller and the target record. Reads are unrestricted and have no
// predicate; every predicate denies a nil caller.
package security

import (
	"publigo/database/model"
)

// CanUpdateUtilisateur allows a user to patch only their own profile.
func CanUpdateUtilisateur(caller *model.Utilisateur, target *model.Utilisateur) bool {
	return caller != nil && target != nil && caller.Id == target.Id
}

// CanDeleteUtilisateur allows a user to delete only their own account.
func CanDeleteUtilisateur(caller *model.Utilisateur, target *model.Utilisateur) bool {
	return caller != nil && target != nil && caller.Id == target.Id
}

// CanCreatePublication allows any authenticated user to post.
func CanCreatePublication(caller *model.Utilisateur) bool {
	return caller != nil
}

// CanDeletePublication allows only the author to delete a publication.
func CanDeletePublication(caller *model.Utilisateur, publication *model.Publication) bool {
	return caller != nil && publication != nil && publication.AuteurId == caller.Id
}
