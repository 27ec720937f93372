package user

import (
	"github.com/google/uuid"
)

// User is the read-only view of a customer the store needs for fulfillment.
type User struct {
	id    uuid.UUID
	email Email
	role  Role
}

func ReconstructUser(id uuid.UUID, email Email, role Role) *User {
	return &User{
		id:    id,
		email: email,
		role:  role,
	}
}

func (u *User) ID() uuid.UUID { return u.id }
func (u *User) Email() Email  { return u.email }
func (u *User) Role() Role    { return u.role }
