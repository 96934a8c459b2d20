package model

import "time"

// Medication records a medicine prescribed to a pet by a veterinarian.
type Medication struct {
	ID           uint       `json:"medication_id" gorm:"primaryKey"`
	PetID        uint       `json:"pet_id" gorm:"index;not null"`
	VetID        uint       `json:"vet_id" gorm:"index;not null"`
	MedicineName string     `json:"medicine_name" gorm:"type:varchar(100);not null"`
	Dosage       string     `json:"dosage" gorm:"type:varchar(100)"`
	StartDate    time.Time  `json:"start_date" gorm:"not null"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Notes        string     `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`

	// Relations
	Pet Pet          `json:"pet,omitempty" gorm:"foreignKey:PetID"`
	Vet Veterinarian `json:"vet,omitempty" gorm:"foreignKey:VetID"`
}
