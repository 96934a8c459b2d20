package model

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// BlockingStatuses are the statuses that hold a (vet, time) slot.
// Cancelled and Completed appointments free the slot.
var BlockingStatuses = []AppointmentStatus{StatusPending, StatusConfirmed}

// Appointment links one pet, its owner and one veterinarian to a
// point-in-time slot. The owner on the row must be the pet's owner at
// booking time.
type Appointment struct {
	ID              uint              `json:"appointment_id" gorm:"primaryKey"`
	PetID           uint              `json:"pet_id" gorm:"index;not null"`
	OwnerID         uint              `json:"owner_id" gorm:"index;not null"`
	VetID           uint              `json:"vet_id" gorm:"index;not null"`
	AppointmentDate time.Time         `json:"appointment_date" gorm:"not null"`
	Status          AppointmentStatus `json:"status" gorm:"type:varchar(10);not null;default:'Pending'"`
	Reason          string            `json:"reason" gorm:"type:varchar(255)"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	// Relations
	Pet   Pet          `json:"pet,omitempty" gorm:"foreignKey:PetID"`
	Owner Owner        `json:"-" gorm:"foreignKey:OwnerID"`
	Vet   Veterinarian `json:"vet,omitempty" gorm:"foreignKey:VetID"`
}

// Terminal reports whether no further status transition is allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
