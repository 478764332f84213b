package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role enumerates the kinds of helpdesk users.
type Role string

const (
	RoleStudent       Role = "student"
	RoleStaff         Role = "staff"
	RoleAdministrator Role = "administrator"
)

// ParseRole resolves a role ignoring case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleStudent, RoleStaff, RoleAdministrator:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// CanManageDictionaries reports whether the role may grow the dictionaries.
func (r Role) CanManageDictionaries() bool {
	return r == RoleStaff || r == RoleAdministrator
}

// CanManageDepartments reports whether the role may register departments.
func (r Role) CanManageDepartments() bool {
	return r == RoleAdministrator
}

// CanManageTickets reports whether the role may see and update every ticket.
func (r Role) CanManageTickets() bool {
	return r == RoleStaff || r == RoleAdministrator
}

// CanListUsers reports whether the role may browse registered accounts.
func (r Role) CanListUsers() bool {
	return r == RoleAdministrator
}

// HasSpecialty reports whether users of this role carry a specialty.
func (r Role) HasSpecialty() bool {
	return r == RoleStaff
}

// User is a registered helpdesk account. Email identifies it case-insensitively.
type User struct {
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	Role         Role
	Specialty    *string
	CreatedAt    time.Time
}

// Key returns the lookup key for the user.
func (u *User) Key() string {
	return EmailKey(u.Email)
}

// EmailKey normalizes an email for lookups.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
