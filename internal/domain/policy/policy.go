// Package policy holds the stateless authorization predicates evaluated in
// front of every mutation. Rules are expressed over a closed actor variant
// instead of ad-hoc string checks at call sites, so a typo in a role name is
// a compile error rather than a silent allow.
package policy

import (
	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor is the authenticated principal a request acts as, reconstructed from
// token claims by the delivery layer.
type Actor struct {
	UserID  uuid.UUID
	Role    entity.Role
	IsStaff bool
}

// CanWriteOffer reports whether the actor may create offers.
// Only business accounts publish offers; reads are open to everyone.
func CanWriteOffer(actor Actor) bool {
	return actor.Role == entity.RoleBusiness
}

// CanMutateOffer reports whether the actor may update or delete an offer
// owned by the given user. Owners and staff only.
func CanMutateOffer(actor Actor, ownerUserID uuid.UUID) bool {
	return actor.IsStaff || actor.UserID == ownerUserID
}

// CanMutateProfile reports whether the actor may patch a profile owned by
// the given user. Owners and staff only.
func CanMutateProfile(actor Actor, ownerUserID uuid.UUID) bool {
	return actor.IsStaff || actor.UserID == ownerUserID
}

// CanCreateOrder reports whether the actor may place orders.
func CanCreateOrder(actor Actor) bool {
	return actor.Role == entity.RoleCustomer
}

// CanPatchOrder reports whether the actor may change an order's status.
func CanPatchOrder(actor Actor) bool {
	return actor.Role == entity.RoleBusiness
}

// CanDeleteOrder reports whether the actor may delete an order.
func CanDeleteOrder(actor Actor) bool {
	return actor.IsStaff
}

// CanCreateReview reports whether the actor may write reviews.
func CanCreateReview(actor Actor) bool {
	return actor.Role == entity.RoleCustomer
}

// CanMutateReview reports whether the actor may update or delete a review
// written by the given reviewer user.
func CanMutateReview(actor Actor, reviewerUserID uuid.UUID) bool {
	return actor.UserID == reviewerUserID
}
