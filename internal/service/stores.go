package service

import (
	"context"
	"time"

	"petcare-service/internal/model"
)

// Store interfaces consumed by the services. The gorm implementations
// live in internal/repository; tests substitute in-memory fakes.

// UserStore persists users and their role profiles.
type UserStore interface {
	// CreateWithProfile inserts the user and its role profile (owner or
	// vet, either may be nil) in one transaction.
	CreateWithProfile(ctx context.Context, u *model.User, owner *model.Owner, vet *model.Veterinarian) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	// GetByEmail returns the user regardless of status; callers decide how
	// to treat non-active accounts.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
	SetStatus(ctx context.Context, id uint, status model.UserStatus) error
	// ListActive returns active users joined with their role profile.
	ListActive(ctx context.Context) ([]model.UserAccount, error)
	// Search finds active users of a role whose name matches the query.
	Search(ctx context.Context, role model.UserRole, query string, limit int) ([]model.UserAccount, error)

	OwnerByUserID(ctx context.Context, userID uint) (*model.Owner, error)
	VetByUserID(ctx context.Context, userID uint) (*model.Veterinarian, error)
	VetByID(ctx context.Context, vetID uint) (*model.Veterinarian, error)
	UpsertOwner(ctx context.Context, o *model.Owner) error
	UpsertVet(ctx context.Context, v *model.Veterinarian) error
}

// PetStore persists pets. List applies the caller's visibility scope.
type PetStore interface {
	Create(ctx context.Context, p *model.Pet) error
	GetByID(ctx context.Context, id uint) (*model.Pet, error)
	List(ctx context.Context, caller Caller) ([]model.Pet, error)
	Update(ctx context.Context, p *model.Pet) error
	Delete(ctx context.Context, id uint) error
	// HasDependents reports whether appointments, medical rows or expenses
	// still reference the pet.
	HasDependents(ctx context.Context, petID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// AppointmentStore persists appointments and owns the atomic slot check.
type AppointmentStore interface {
	// CreateBooking inserts the appointment if no Pending/Confirmed
	// appointment of the same vet falls within buffer of its date-time.
	// The check and the insert run in one transaction holding row locks;
	// a taken slot surfaces as *ConflictError.
	CreateBooking(ctx context.Context, a *model.Appointment, buffer time.Duration) error
	GetByID(ctx context.Context, id uint) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status model.AppointmentStatus) error
	List(ctx context.Context, caller Caller) ([]model.Appointment, error)
	ListBetween(ctx context.Context, caller Caller, from, to time.Time, statuses []model.AppointmentStatus) ([]model.Appointment, error)
	// CompleteConfirmed marks the vet's Confirmed appointments for the pet
	// within the day window as Completed. Returns how many rows changed.
	CompleteConfirmed(ctx context.Context, petID, vetID uint, from, to time.Time) (int64, error)
	CountUpcoming(ctx context.Context, from time.Time) (int64, error)
}

// MedicalStore persists vaccinations and medications.
type MedicalStore interface {
	CreateVaccination(ctx context.Context, v *model.Vaccination) error
	CreateMedication(ctx context.Context, m *model.Medication) error
	ListVaccinations(ctx context.Context, caller Caller) ([]model.Vaccination, error)
	ListMedications(ctx context.Context, caller Caller) ([]model.Medication, error)
	ListVaccinationsByPet(ctx context.Context, petID uint) ([]model.Vaccination, error)
	ListMedicationsByPet(ctx context.Context, petID uint) ([]model.Medication, error)
	// RemindersDue returns vaccination-due and medication-end reminders
	// falling inside [from, to], scoped to the caller.
	RemindersDue(ctx context.Context, caller Caller, from, to time.Time) ([]model.Reminder, error)
	CountAll(ctx context.Context) (int64, error)
}

// ExpenseStore persists pet expenses.
type ExpenseStore interface {
	Create(ctx context.Context, e *model.Expense) error
	List(ctx context.Context, caller Caller) ([]model.Expense, error)
}

// StatsStore feeds the admin dashboard.
type StatsStore interface {
	CountActiveUsers(ctx context.Context) (int64, error)
	RecentActivity(ctx context.Context, limit int) ([]model.Activity, error)
}
