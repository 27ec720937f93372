package shared

import (
	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrProductNotFound = errs.Define(errs.ErrNotFound, "product not found")

type ProductSnapshot struct {
	ID             uuid.UUID
	Name           string
	UnitPriceCents int64
}

// Actor is the authenticated principal a use case runs for.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

// CanAccess reports whether the actor may see data owned by ownerID.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.Role == user.RoleAdmin || a.UserID == ownerID
}
