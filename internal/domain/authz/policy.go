// Package authz centralizes record visibility decisions. Handlers ask
// this package instead of encoding ownership checks inline; the caller
// computes the relation between the acting user and the record first.
package authz

import "github.com/retail/backend/internal/domain/identity"

// Role is the acting user's access level
type Role string

const (
	RoleBuyer     Role = "buyer"
	RoleShop      Role = "shop"
	RoleStaff     Role = "staff"
	RoleSuperuser Role = "superuser"
)

// Resource is a guarded record kind
type Resource string

const (
	ResourceOrder     Resource = "order"
	ResourceOrderItem Resource = "order_item"
	ResourceContact   Resource = "contact"
	ResourceUser      Resource = "user"
	ResourceShop      Resource = "shop"
	ResourcePriceList Resource = "pricelist"
)

// Relation describes how the acting user is tied to the record
type Relation string

const (
	// RelationOwner means the record belongs to the acting user
	RelationOwner Relation = "owner"
	// RelationSupplier means the record is traceable to the acting
	// user's shop offers
	RelationSupplier Relation = "supplier"
	// RelationNone means no tie at all
	RelationNone Relation = "none"
)

// RoleOf derives the strongest role of a user
func RoleOf(user *identity.User) Role {
	switch {
	case user == nil:
		return RoleBuyer
	case user.IsSuperuser:
		return RoleSuperuser
	case user.IsStaff:
		return RoleStaff
	case user.IsShop():
		return RoleShop
	default:
		return RoleBuyer
	}
}

type policyKey struct {
	role     Role
	resource Resource
}

// visibility is the explicit decision table. A missing entry denies.
var visibility = map[policyKey][]Relation{
	{RoleBuyer, ResourceOrder}:     {RelationOwner},
	{RoleBuyer, ResourceOrderItem}: {RelationOwner},
	{RoleBuyer, ResourceContact}:   {RelationOwner},
	{RoleBuyer, ResourceUser}:      {RelationOwner},

	{RoleShop, ResourceOrder}:     {RelationOwner, RelationSupplier},
	{RoleShop, ResourceOrderItem}: {RelationOwner, RelationSupplier},
	{RoleShop, ResourceContact}:   {RelationOwner},
	{RoleShop, ResourceUser}:      {RelationOwner},
	{RoleShop, ResourceShop}:      {RelationOwner},
	{RoleShop, ResourcePriceList}: {RelationOwner},

	{RoleStaff, ResourceOrder}:     {RelationOwner, RelationSupplier},
	{RoleStaff, ResourceOrderItem}: {RelationOwner, RelationSupplier},
	{RoleStaff, ResourceContact}:   {RelationOwner},
	{RoleStaff, ResourceUser}:      {RelationOwner, RelationSupplier},
	{RoleStaff, ResourceShop}:      {RelationOwner, RelationSupplier},
	{RoleStaff, ResourcePriceList}: {RelationOwner},
}

// Decide reports whether a role may see or act on a record it has the
// given relation to. Superusers pass unconditionally.
func Decide(role Role, resource Resource, relation Relation) bool {
	if role == RoleSuperuser {
		return true
	}
	for _, allowed := range visibility[policyKey{role, resource}] {
		if allowed == relation {
			return true
		}
	}
	return false
}

// CanListAll reports whether a role sees unrelated records of a kind,
// which drives the admin listings
func CanListAll(role Role, resource Resource) bool {
	return Decide(role, resource, RelationNone)
}
