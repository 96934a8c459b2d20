package model

import "time"

// Reminder is a derived, read-only row for dashboard reminder lists:
// a vaccination coming due or a medication course ending.
type Reminder struct {
	Type    string    `json:"reminder_type"` // "Vaccination" or "Medication"
	Details string    `json:"details"`
	PetName string    `json:"pet_name"`
	DueOn   time.Time `json:"reminder_date"`
}

// Activity is a derived row for the admin recent-activity feed.
type Activity struct {
	Type    string    `json:"activity_type"`
	Details string    `json:"details"`
	When    time.Time `json:"activity_date"`
}
