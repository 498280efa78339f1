package model

import "time"

type UserRole string

const (
	RoleSuperAdmin    UserRole = "super-admin"
	RoleBusinessAdmin UserRole = "business-admin"
	RoleCustomer      UserRole = "customer"
)

// User is an entry in the local credential table. This is demo-grade
// authentication: there is no real identity provider behind it.
//
// Records persist through encoding/json, so the hash must carry a real tag.
// API responses never serialize this struct directly; controllers build a
// payload without the hash.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name,omitempty"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// DashboardPath returns the routed dashboard for a role.
func (r UserRole) DashboardPath() string {
	switch r {
	case RoleSuperAdmin:
		return "/super-admin"
	case RoleBusinessAdmin:
		return "/business-admin"
	default:
		return "/customer"
	}
}

// Valid reports whether the role is one of the three known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleBusinessAdmin, RoleCustomer:
		return true
	}
	return false
}
