package model

import "time"

// Vaccination records a vaccine administered to a pet by a veterinarian.
type Vaccination struct {
	ID          uint       `json:"vaccination_id" gorm:"primaryKey"`
	PetID       uint       `json:"pet_id" gorm:"index;not null"`
	VetID       uint       `json:"vet_id" gorm:"index;not null"`
	VaccineName string     `json:"vaccine_name" gorm:"type:varchar(100);not null"`
	DateGiven   time.Time  `json:"date_given" gorm:"not null"`
	NextDueDate *time.Time `json:"next_due_date,omitempty"`
	Notes       string     `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`

	// Relations
	Pet Pet          `json:"pet,omitempty" gorm:"foreignKey:PetID"`
	Vet Veterinarian `json:"vet,omitempty" gorm:"foreignKey:VetID"`
}

// DueDate is the reminder date for the vaccination. When no explicit next
// due date was recorded the booster is assumed one year after the shot.
func (v Vaccination) DueDate() time.Time {
	if v.NextDueDate != nil {
		return *v.NextDueDate
	}
	return v.DateGiven.AddDate(1, 0, 0)
}
