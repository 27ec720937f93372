package user

type Role string

const (
	RoleCustomer Role = "customer"
	RoleService  Role = "service"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleService, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanReportDelivery reports whether the principal may push delivery progress into the store.
func (r Role) CanReportDelivery() bool {
	return r == RoleService || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
