package model

import "time"

// Veterinarian is the vet profile attached 1:1 to a user with RoleVeterinarian.
type Veterinarian struct {
	ID             uint      `json:"vet_id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Specialization string    `json:"specialization" gorm:"type:varchar(100)"`
	Phone          string    `json:"phone" gorm:"type:varchar(20)"`
	ClinicAddress  string    `json:"clinic_address" gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
