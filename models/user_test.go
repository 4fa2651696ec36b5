package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleNames(t *testing.T) {
	cases := []struct {
		name  string
		roles []UserRole
		want  []string
	}{
		{
			name: "no roles default to customer",
			want: []string{RoleCustomer},
		},
		{
			name:  "explicit roles pass through",
			roles: []UserRole{{Name: RoleCustomer}, {Name: RoleAdmin}},
			want:  []string{RoleCustomer, RoleAdmin},
		},
		{
			name:  "duplicates collapse",
			roles: []UserRole{{Name: RoleAdmin}, {Name: RoleAdmin}},
			want:  []string{RoleAdmin},
		},
		{
			name:  "empty names ignored",
			roles: []UserRole{{Name: ""}},
			want:  []string{RoleCustomer},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := User{Roles: tc.roles}
			assert.Equal(t, tc.want, u.RoleNames())
		})
	}
}

func TestHasRole(t *testing.T) {
	admin := User{Roles: []UserRole{{Name: RoleAdmin}}}
	assert.True(t, admin.HasRole(RoleAdmin))
	assert.False(t, admin.HasRole(RoleCustomer))

	// The implicit CUSTOMER default counts as holding the role.
	nobody := User{}
	assert.True(t, nobody.HasRole(RoleCustomer))
}

func TestVariantUnitPrice(t *testing.T) {
	product := Product{SalePrice: 250}

	plain := ProductVariant{}
	assert.Equal(t, 250.0, plain.UnitPrice(&product))

	override := 199.0
	discounted := ProductVariant{PriceOverride: &override}
	assert.Equal(t, 199.0, discounted.UnitPrice(&product))
}

func TestAddressSnapshotCopiesDeliverableFields(t *testing.T) {
	addr := Address{
		ID:         9,
		UserID:     "user-1",
		FullName:   "Ada Lovelace",
		Phone:      "+33 1 23 45 67 89",
		Country:    "FR",
		City:       "Paris",
		Street:     "12 Rue de la Paix",
		PostalCode: "75002",
		IsDefault:  true,
	}

	snap := addr.Snapshot()

	assert.Equal(t, "Ada Lovelace", snap.FullName)
	assert.Equal(t, "12 Rue de la Paix", snap.Street)
	assert.Equal(t, "75002", snap.PostalCode)
}
