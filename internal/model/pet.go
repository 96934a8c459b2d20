package model

import "time"

// Pet belongs to exactly one owner. Appointments and medical rows keep
// referencing the pet after edits, so pets are never cascaded away.
type Pet struct {
	ID             uint      `json:"pet_id" gorm:"primaryKey"`
	OwnerID        uint      `json:"owner_id" gorm:"index;not null"`
	Name           string    `json:"name" gorm:"type:varchar(100);not null"`
	Breed          string    `json:"breed" gorm:"type:varchar(100)"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender" gorm:"type:varchar(10)"`
	MedicalHistory string    `json:"medical_history" gorm:"type:text"`
	Image          string    `json:"image" gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Owner Owner `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
