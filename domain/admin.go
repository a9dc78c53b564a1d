package domain

import "time"

// Role classifies an admin account by privilege tier.
type Role string

const (
	RoleWriter     Role = "writer"
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// rolePrivilege orders roles from least to most privileged. Unknown roles
// rank below every known role so they never satisfy a requirement.
var rolePrivilege = map[Role]int{
	RoleWriter:     1,
	RoleStaff:      2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

// Known reports whether the role belongs to the closed enumeration.
func (r Role) Known() bool {
	_, ok := rolePrivilege[r]
	return ok
}

// Satisfies is the single place where "does role R meet requirement X"
// is decided. A superadmin requirement is met only by superadmin itself.
func (r Role) Satisfies(required Role) bool {
	have, ok := rolePrivilege[r]
	if !ok {
		return false
	}
	want, ok := rolePrivilege[required]
	if !ok {
		return false
	}
	return have >= want
}

// Admin is a row in the admin directory. The directory is authoritative
// for email and role, regardless of what a bearer token claims.
type Admin struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Account is the identity a bearer credential resolves to before the
// directory lookup. It is not trusted for email or role.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AdminIdentity is the request-scoped result of a successful
// authentication. It is never persisted or cached.
type AdminIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Identity projects the directory record into a request identity.
func (a *Admin) Identity() AdminIdentity {
	return AdminIdentity{
		ID:    a.ID,
		Email: a.Email,
		Role:  a.Role,
	}
}
