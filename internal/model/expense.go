package model

import "time"

// Expense is a cost the owner tracked against one of their pets.
type Expense struct {
	ID        uint      `json:"expense_id" gorm:"primaryKey"`
	PetID     uint      `json:"pet_id" gorm:"index;not null"`
	OwnerID   uint      `json:"owner_id" gorm:"index;not null"`
	Category  string    `json:"category" gorm:"type:varchar(50)"`
	Amount    float64   `json:"amount" gorm:"not null"`
	SpentOn   time.Time `json:"spent_on" gorm:"not null"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Pet Pet `json:"pet,omitempty" gorm:"foreignKey:PetID"`
}
