package domain

import "time"

// Role enumerates account roles.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleTechnician Role = "TECHNICIAN"
	RoleClient     Role = "CLIENT"
)

// User models every account in the system. The role field decides what the
// account may do; TECHNICIAN is the only role the lifecycle engine accepts
// for assignment.
type User struct {
	ID           string
	Role         Role
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
