package auth

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User is the domain entity.
type User struct {
	ID        int64
	Username  string
	Email     string
	Password  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
