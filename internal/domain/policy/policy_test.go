package policy

import (
	"testing"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOfferPolicies(t *testing.T) {
	business := Actor{UserID: uuid.New(), Role: entity.RoleBusiness}
	customer := Actor{UserID: uuid.New(), Role: entity.RoleCustomer}
	staff := Actor{UserID: uuid.New(), Role: entity.RoleCustomer, IsStaff: true}

	assert.True(t, CanWriteOffer(business))
	assert.False(t, CanWriteOffer(customer))

	assert.True(t, CanMutateOffer(business, business.UserID))
	assert.False(t, CanMutateOffer(business, uuid.New()))
	assert.True(t, CanMutateOffer(staff, uuid.New()), "staff bypasses ownership")
}

func TestOrderPolicies(t *testing.T) {
	business := Actor{UserID: uuid.New(), Role: entity.RoleBusiness}
	customer := Actor{UserID: uuid.New(), Role: entity.RoleCustomer}
	staff := Actor{UserID: uuid.New(), Role: entity.RoleBusiness, IsStaff: true}

	assert.True(t, CanCreateOrder(customer))
	assert.False(t, CanCreateOrder(business))

	assert.True(t, CanPatchOrder(business))
	assert.False(t, CanPatchOrder(customer))

	assert.True(t, CanDeleteOrder(staff))
	assert.False(t, CanDeleteOrder(business))
	assert.False(t, CanDeleteOrder(customer))
}

func TestReviewPolicies(t *testing.T) {
	reviewer := Actor{UserID: uuid.New(), Role: entity.RoleCustomer}

	assert.True(t, CanCreateReview(reviewer))
	assert.False(t, CanCreateReview(Actor{Role: entity.RoleBusiness}))

	assert.True(t, CanMutateReview(reviewer, reviewer.UserID))
	assert.False(t, CanMutateReview(reviewer, uuid.New()))
}
