package models

import (
	"fmt"

	"gorm.io/gorm"
)

// UserRole represents the role of a user in the system
type UserRole int

// User role constants
const (
	// UserRoleCustomer represents a customer (the client side of a job)
	UserRoleCustomer UserRole = iota
	// UserRoleContractor represents a contractor performing jobs
	UserRoleContractor
	// UserRoleAdmin represents an administrator user
	UserRoleAdmin
)

// User represents a contractor, customer or admin in the system
type User struct {
	gorm.Model
	Username string   `json:"username" gorm:"not null;unique"`
	Email    string   `json:"email" gorm:""`
	Role     UserRole `json:"role" gorm:"index"`
}

func (s UserRole) String() string {
	return []string{
		"customer",
		"contractor",
		"admin",
	}[s]
}

// ParseUserRole converts a string representation of a user role to UserRole type
func ParseUserRole(str string) (UserRole, error) {
	for i, role := range []string{
		"customer",
		"contractor",
		"admin",
	} {
		if role == str {
			return UserRole(i), nil
		}
	}
	return UserRoleCustomer, fmt.Errorf("invalid user role: %s", str)
}
