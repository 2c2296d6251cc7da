package models

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleSupervisor UserRole = "supervisor"
)

// Roles lists every role in the order credentials are looked up at login.
var Roles = []UserRole{RoleAdmin, RoleSupervisor}

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// Table is the storage grouping that holds users of this role.
func (r UserRole) Table() string {
	switch r {
	case RoleAdmin:
		return "admins"
	case RoleSupervisor:
		return "supervisors"
	}
	return ""
}

// User is an authenticated actor. Users are partitioned by role into
// separate tables; UserID is unique across all of them.
type User struct {
	UserID       string    `gorm:"primaryKey;size:64" json:"userId"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
