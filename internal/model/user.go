package model

import "time"

// UserRole identifies what a user is allowed to do in the system.
type UserRole string

const (
	RoleAdmin        UserRole = "Admin"
	RoleVeterinarian UserRole = "Veterinarian"
	RolePetOwner     UserRole = "Pet Owner"
)

// UserStatus is the lifecycle flag on a user account. Deleted users are
// never removed from the table; history stays referentially intact.
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
	UserStatusDeleted  UserStatus = "Deleted"
)

// User represents the user model stored in the database
type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	FullName  string     `json:"full_name" gorm:"type:varchar(100);not null"`
	Email     string     `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password  string     `json:"-" gorm:"type:varchar(255)"`
	Role      UserRole   `json:"role" gorm:"type:varchar(20);not null"`
	Status    UserStatus `json:"status" gorm:"type:varchar(10);not null;default:'Active'"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UserAccount is the admin listing view: a user joined with the
// role-specific profile fields (phone/address live on owners and
// veterinarians, not on users).
type UserAccount struct {
	UserID         uint       `json:"user_id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Role           UserRole   `json:"role"`
	Status         UserStatus `json:"status"`
	RelatedID      uint       `json:"related_id,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Address        string     `json:"address,omitempty"`
	Specialization string     `json:"specialization,omitempty"`
}
